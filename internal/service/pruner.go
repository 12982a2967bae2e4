package service

import (
	"context"
	"time"

	"smart_plant/internal/logger"
	"smart_plant/internal/repository"
)

// PrunerService drops override rows that can no longer be read: older than
// the validity window and not the newest of their plant.
type PrunerService struct {
	overrides repository.OverrideRepo
	validity  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewPrunerService(overrides repository.OverrideRepo, validity time.Duration, log *logger.Logger, now func() time.Time) *PrunerService {
	return &PrunerService{overrides: overrides, validity: validity, log: log, now: now}
}

func (s *PrunerService) PruneOnce(ctx context.Context) (int64, error) {
	return s.overrides.PruneSuperseded(ctx, s.now().Add(-s.validity))
}

// Run prunes on every tick until ctx is canceled.
func (s *PrunerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PruneOnce(ctx)
			if s.log == nil {
				continue
			}
			if err != nil {
				s.log.Errorw("override_prune_failed", "err", err)
				continue
			}
			if n > 0 {
				s.log.Debugw("overrides_pruned", "count", n)
			}
		}
	}
}
