package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"smart_plant/internal/logger"
	"smart_plant/internal/models"
	"smart_plant/internal/notifier"
)

// Dispatch is one alert to deliver to every bound token of a plant.
type Dispatch struct {
	PlantID string
	Reason  models.NotificationReason
	Tokens  []string
	Title   string
	Body    string
}

// DispatchService delivers alerts from a bounded queue with a fixed worker pool.
type DispatchService struct {
	queue    chan Dispatch
	notifier notifier.Notifier
	workers  int
	timeout  time.Duration
	log      *logger.Logger
}

func NewDispatchService(n notifier.Notifier, workers, queueSize int, timeout time.Duration, log *logger.Logger) *DispatchService {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &DispatchService{
		queue:    make(chan Dispatch, queueSize),
		notifier: n,
		workers:  workers,
		timeout:  timeout,
		log:      log,
	}
}

// Enqueue never blocks; it reports false when the queue is full.
func (d *DispatchService) Enqueue(job Dispatch) bool {
	select {
	case d.queue <- job:
		return true
	default:
		return false
	}
}

// Run starts the workers and blocks until ctx is canceled.
func (d *DispatchService) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-d.queue:
					d.deliver(ctx, job)
				}
			}
		}()
	}
	wg.Wait()
}

// deliver tries every token; one failing token does not stop the others.
func (d *DispatchService) deliver(ctx context.Context, job Dispatch) int {
	failed := 0
	for _, token := range job.Tokens {
		sendCtx, cancel := ctx, context.CancelFunc(func() {})
		if d.timeout > 0 {
			sendCtx, cancel = context.WithTimeout(ctx, d.timeout)
		}
		err := d.notifier.Send(sendCtx, token, job.Title, job.Body)
		cancel()
		if err == nil {
			continue
		}
		failed++
		if d.log == nil {
			continue
		}
		var de *notifier.DeliveryError
		if errors.As(err, &de) {
			d.log.Warnw("notification_delivery_failed", "plant_id", job.PlantID, "reason", job.Reason, "token", de.Token, "err", de.Err)
		} else {
			d.log.Warnw("notification_delivery_failed", "plant_id", job.PlantID, "reason", job.Reason, "token", token, "err", err)
		}
	}
	return failed
}
