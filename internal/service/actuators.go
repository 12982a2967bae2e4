package service

import (
	"context"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

// ActuatorService resolves what the actuators should do right now. It never writes.
type ActuatorService struct {
	readings      repository.ReadingRepo
	overrides     repository.OverrideRepo
	pumpThreshold int
	validity      time.Duration
	now           func() time.Time
}

func NewActuatorService(readings repository.ReadingRepo, overrides repository.OverrideRepo, pumpThreshold int, validity time.Duration, now func() time.Time) *ActuatorService {
	return &ActuatorService{
		readings:      readings,
		overrides:     overrides,
		pumpThreshold: pumpThreshold,
		validity:      validity,
		now:           now,
	}
}

// overrideExpired is strict: an override exactly validity old is still active.
func overrideExpired(requestedAt, now time.Time, validity time.Duration) bool {
	return now.Sub(requestedAt) > validity
}

// Resolve returns the newest override while it is valid, otherwise the
// policy output for the latest reading. ErrNoData when neither exists.
func (s *ActuatorService) Resolve(ctx context.Context, plantID string) (models.ActuatorState, error) {
	o, err := s.overrides.Latest(ctx, plantID)
	if err != nil {
		return models.ActuatorState{}, err
	}
	if o != nil && !overrideExpired(o.RequestedAt, s.now(), s.validity) {
		return models.ActuatorState{
			Overridden:    true,
			LampIntensity: o.LampIntensity,
			WaterPump:     o.WaterPump,
		}, nil
	}

	r, err := s.readings.Latest(ctx, plantID)
	if err != nil {
		return models.ActuatorState{}, err
	}
	if r == nil {
		return models.ActuatorState{}, ErrNoData
	}
	lamp, pump := DeriveActuatorState(r.LightIntensity, r.SoilMoisture, s.pumpThreshold)
	return models.ActuatorState{LampIntensity: lamp, WaterPump: pump}, nil
}
