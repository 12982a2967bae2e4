package service

import (
	"context"
	"time"

	"smart_plant/internal/logger"
	"smart_plant/internal/models"
	"smart_plant/internal/repository"
	"smart_plant/internal/telemetry"
)

// ReadingService ingests sensor samples and fans out the side effects.
type ReadingService struct {
	repo      repository.ReadingRepo
	alerts    Alerts
	mirror    telemetry.Mirror
	publisher *statePublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewReadingService(repo repository.ReadingRepo, alerts Alerts, mirror telemetry.Mirror, publisher *statePublisher, log *logger.Logger, now func() time.Time) *ReadingService {
	return &ReadingService{repo: repo, alerts: alerts, mirror: mirror, publisher: publisher, log: log, now: now}
}

// Ingest stores the reading and returns the plant's entry count. Alerting,
// mirroring and publishing failures are logged only.
func (s *ReadingService) Ingest(ctx context.Context, plantID string, in ReadingInput) (int, error) {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"soil_moisture", in.SoilMoisture},
		{"light_intensity", in.LightIntensity},
		{"water_level", in.WaterLevel},
	} {
		if err := validatePercent(f.name, f.v); err != nil {
			return 0, err
		}
	}

	r := models.Reading{
		PlantID:        plantID,
		RecordedAt:     s.now().UTC(),
		SoilMoisture:   in.SoilMoisture,
		LightIntensity: in.LightIntensity,
		WaterLevel:     in.WaterLevel,
	}
	id, err := s.repo.Append(ctx, r)
	if err != nil {
		return 0, err
	}
	r.ID = id

	count, err := s.repo.Count(ctx, plantID)
	if err != nil {
		return 0, err
	}

	if s.alerts != nil {
		if _, err := s.alerts.Evaluate(ctx, r); err != nil && s.log != nil {
			s.log.Errorw("alert_evaluation_failed", "plant_id", plantID, "err", err)
		}
	}
	if s.mirror != nil {
		if err := s.mirror.WriteReading(ctx, r); err != nil && s.log != nil {
			s.log.Warnw("reading_mirror_failed", "plant_id", plantID, "err", err)
		}
	}
	s.publisher.publish(ctx, plantID)

	return count, nil
}
