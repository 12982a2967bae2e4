package service

import (
	"context"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

// OverrideService appends to and clears a plant's override ledger.
type OverrideService struct {
	repo      repository.OverrideRepo
	locks     *keyedMutex
	publisher *statePublisher
	now       func() time.Time
}

func NewOverrideService(repo repository.OverrideRepo, locks *keyedMutex, publisher *statePublisher, now func() time.Time) *OverrideService {
	return &OverrideService{repo: repo, locks: locks, publisher: publisher, now: now}
}

// Submit records a new override stamped now; it governs until the validity window passes.
func (s *OverrideService) Submit(ctx context.Context, plantID string, p OverrideParams) error {
	if err := validatePercent("lamp_intensity_pct", p.LampIntensity); err != nil {
		return err
	}

	unlock := s.locks.Lock(plantID)
	_, err := s.repo.Append(ctx, models.OverrideRequest{
		PlantID:       plantID,
		RequestedAt:   s.now().UTC(),
		LampIntensity: p.LampIntensity,
		WaterPump:     p.WaterPump,
	})
	unlock()
	if err != nil {
		return err
	}

	s.publisher.publish(ctx, plantID)
	return nil
}

// Remove clears the ledger and returns how many overrides remain (0 on success).
func (s *OverrideService) Remove(ctx context.Context, plantID string) (int, error) {
	unlock := s.locks.Lock(plantID)
	if _, err := s.repo.DeleteAll(ctx, plantID); err != nil {
		unlock()
		return 0, err
	}
	n, err := s.repo.Count(ctx, plantID)
	unlock()
	if err != nil {
		return 0, err
	}

	s.publisher.publish(ctx, plantID)
	return n, nil
}
