package service

import (
	"context"
	"errors"

	"smart_plant/internal/broker"
	"smart_plant/internal/logger"
)

// statePublisher pushes the freshly resolved actuator state to the device.
// Failures are logged and never fail the calling request.
type statePublisher struct {
	actuators Actuators
	publisher broker.Publisher
	log       *logger.Logger
}

func (p *statePublisher) publish(ctx context.Context, plantID string) {
	if p == nil || p.publisher == nil {
		return
	}
	state, err := p.actuators.Resolve(ctx, plantID)
	if err != nil {
		if !errors.Is(err, ErrNoData) && p.log != nil {
			p.log.Warnw("actuator_state_resolve_failed", "plant_id", plantID, "err", err)
		}
		return
	}
	if err := p.publisher.PublishActuatorState(ctx, plantID, state); err != nil && p.log != nil {
		p.log.Warnw("actuator_state_publish_failed", "plant_id", plantID, "err", err)
	}
}
