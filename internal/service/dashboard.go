package service

import (
	"context"
	"fmt"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

type DashboardService struct {
	readings      repository.ReadingRepo
	actuators     Actuators
	loc           *time.Location
	tankLiters    float64
	waterLevelMin int
}

func NewDashboardService(readings repository.ReadingRepo, actuators Actuators, opts Options) *DashboardService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		readings:      readings,
		actuators:     actuators,
		loc:           loc,
		tankLiters:    opts.TankCapacityLiters,
		waterLevelMin: opts.WaterLevelThreshold,
	}
}

// Snapshot builds the home screen view from the latest reading and the
// currently resolved actuator state.
func (s *DashboardService) Snapshot(ctx context.Context, plantID string) (models.Dashboard, error) {
	r, err := s.readings.Latest(ctx, plantID)
	if err != nil {
		return models.Dashboard{}, err
	}
	if r == nil {
		return models.Dashboard{}, ErrNoData
	}
	state, err := s.actuators.Resolve(ctx, plantID)
	if err != nil {
		return models.Dashboard{}, err
	}

	litres := fmt.Sprintf("%.2f L", float64(r.WaterLevel)*s.tankLiters/100)
	levelPct := fmt.Sprintf("%d%%", r.WaterLevel)

	return models.Dashboard{
		Metadata: models.DashboardMetadata{
			LastReadingTime: r.RecordedAt.In(s.loc).Format(time.RFC3339),
		},
		PlantState: Classify(r.SoilMoisture, r.LightIntensity),
		SensorReadings: []models.SensorReading{
			{
				Name:        "Soil Moisture",
				Description: "The current soil moisture.",
				Readings:    []string{fmt.Sprintf("%d%%", r.SoilMoisture)},
			},
			{
				Name:        "Light Intensity",
				Description: "The current light intensity.",
				Readings:    []string{fmt.Sprintf("%d%%", r.LightIntensity)},
			},
			{
				Name:        "Water Level",
				Description: "The current water level in the tank.",
				Readings:    []string{litres, levelPct},
			},
		},
		Reports: []models.Report{
			{
				Title:       "Water Tank Report",
				HeaderText:  "Water Level",
				Value:       litres + " - " + levelPct,
				Description: s.tankDescription(r.WaterLevel),
			},
			{
				Title:       "Water Pump Report",
				HeaderText:  "Pump State",
				Value:       state.WaterPump,
				Description: pumpDescription(state.WaterPump),
			},
			{
				Title:       "Light Source Report",
				HeaderText:  "Lamp Power",
				Value:       fmt.Sprintf("%d%%", state.LampIntensity),
				Description: fmt.Sprintf("The light source is currently working at %d%% intensity.", state.LampIntensity),
			},
		},
	}, nil
}

func (s *DashboardService) tankDescription(level int) string {
	if level < s.waterLevelMin {
		return "The water tank is running low. Refill it soon to keep the pump working."
	}
	return "The water tank has enough water for now."
}

func pumpDescription(on bool) string {
	if on {
		return "The water pump is currently turned on and watering the plant."
	}
	return "The water pump is currently turned off."
}
