package telemetry

import (
	"context"
	"fmt"

	"smart_plant/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const readingMeasurement = "plant_readings"

// Mirror copies ingested readings to a time-series store.
type Mirror interface {
	WriteReading(ctx context.Context, r models.Reading) error
	Close()
}

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxMirror writes one point per reading, blocking until the server acknowledges it.
type InfluxMirror struct {
	client influxdb2.Client
	writer pointWriter
}

// NewInfluxMirror connects and checks server health before returning.
func NewInfluxMirror(ctx context.Context, cfg InfluxConfig) (*InfluxMirror, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("influxdb health check: %w", err)
	}
	if health.Status != "pass" {
		client.Close()
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return nil, fmt.Errorf("influxdb unhealthy: %s %s", health.Status, msg)
	}

	return &InfluxMirror{client: client, writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket)}, nil
}

func readingPoint(r models.Reading) *write.Point {
	return influxdb2.NewPoint(
		readingMeasurement,
		map[string]string{"plant_id": r.PlantID},
		map[string]interface{}{
			"soil_moisture":   r.SoilMoisture,
			"light_intensity": r.LightIntensity,
			"water_level":     r.WaterLevel,
		},
		r.RecordedAt,
	)
}

func (m *InfluxMirror) WriteReading(ctx context.Context, r models.Reading) error {
	if err := m.writer.WritePoint(ctx, readingPoint(r)); err != nil {
		return fmt.Errorf("write reading of plant %q to influxdb: %w", r.PlantID, err)
	}
	return nil
}

func (m *InfluxMirror) Close() {
	if m.client != nil {
		m.client.Close()
	}
}

type NoopMirror struct{}

func (NoopMirror) WriteReading(context.Context, models.Reading) error { return nil }

func (NoopMirror) Close() {}
