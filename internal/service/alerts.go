package service

import (
	"context"
	"fmt"
	"time"

	"smart_plant/internal/logger"
	"smart_plant/internal/models"
	"smart_plant/internal/repository"

	"github.com/google/uuid"
)

// AlertService gates low-resource notifications behind a per-plant, per-reason cooldown.
type AlertService struct {
	records       repository.NotificationRepo
	tokens        repository.TokenRepo
	dispatcher    Dispatcher
	locks         *keyedMutex
	waterLevelMin int
	moistureMin   int
	cooldown      time.Duration
	log           *logger.Logger
	now           func() time.Time
}

func NewAlertService(records repository.NotificationRepo, tokens repository.TokenRepo, dispatcher Dispatcher, locks *keyedMutex, opts Options, log *logger.Logger, now func() time.Time) *AlertService {
	return &AlertService{
		records:       records,
		tokens:        tokens,
		dispatcher:    dispatcher,
		locks:         locks,
		waterLevelMin: opts.WaterLevelThreshold,
		moistureMin:   opts.SoilMoistureThreshold,
		cooldown:      opts.Cooldown,
		log:           log,
		now:           now,
	}
}

func alertMessage(reason models.NotificationReason, plantID string, value int) (string, string) {
	switch reason {
	case models.ReasonWaterLevelLow:
		return "Water tank is running low",
			fmt.Sprintf("The water tank of plant %s is at %d%%. Please refill it soon.", plantID, value)
	default:
		return "Your plant is thirsty",
			fmt.Sprintf("Soil moisture of plant %s dropped to %d%%.", plantID, value)
	}
}

// ShouldNotify records and dispatches an alert when value is below threshold
// and no alert of the same reason was sent within cooldown. The record means
// "attempted"; delivery happens asynchronously.
func (s *AlertService) ShouldNotify(ctx context.Context, plantID string, reason models.NotificationReason, value, threshold int, cooldown time.Duration) (bool, error) {
	if value >= threshold {
		return false, nil
	}

	unlock := s.locks.Lock("alert:" + plantID)
	defer unlock()

	now := s.now().UTC()
	last, err := s.records.LatestByReason(ctx, plantID, reason)
	if err != nil {
		return false, err
	}
	if last != nil && now.Sub(last.DispatchedAt) < cooldown {
		return false, nil
	}

	if err := s.records.Append(ctx, models.NotificationRecord{
		ID:           uuid.NewString(),
		PlantID:      plantID,
		Reason:       reason,
		DispatchedAt: now,
	}); err != nil {
		return false, err
	}

	binding, err := s.tokens.Get(ctx, plantID)
	if err != nil {
		// the record stands; this alert just reaches nobody
		if s.log != nil {
			s.log.Errorw("token_lookup_failed", "plant_id", plantID, "reason", reason, "err", err)
		}
		return true, nil
	}

	title, body := alertMessage(reason, plantID, value)
	if !s.dispatcher.Enqueue(Dispatch{PlantID: plantID, Reason: reason, Tokens: binding.Tokens, Title: title, Body: body}) && s.log != nil {
		s.log.Warnw("notification_dispatch_dropped", "plant_id", plantID, "reason", reason, "tokens", len(binding.Tokens))
	}
	return true, nil
}

// Evaluate runs both checks for a fresh reading and returns the reasons that fired.
func (s *AlertService) Evaluate(ctx context.Context, r models.Reading) ([]models.NotificationReason, error) {
	checks := []struct {
		reason    models.NotificationReason
		value     int
		threshold int
	}{
		{models.ReasonWaterLevelLow, r.WaterLevel, s.waterLevelMin},
		{models.ReasonSoilMoistureLow, r.SoilMoisture, s.moistureMin},
	}

	var fired []models.NotificationReason
	for _, c := range checks {
		ok, err := s.ShouldNotify(ctx, r.PlantID, c.reason, c.value, c.threshold, s.cooldown)
		if err != nil {
			return fired, err
		}
		if ok {
			fired = append(fired, c.reason)
		}
	}
	return fired, nil
}
