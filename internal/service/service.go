package service

import (
	"context"
	"time"

	"smart_plant/internal/broker"
	"smart_plant/internal/logger"
	"smart_plant/internal/models"
	"smart_plant/internal/notifier"
	"smart_plant/internal/repository"
	"smart_plant/internal/telemetry"
)

// Readings ingests sensor samples.
type Readings interface {
	Ingest(ctx context.Context, plantID string, in ReadingInput) (int, error)
}

// Actuators resolves the state the lamp and pump should be in.
type Actuators interface {
	Resolve(ctx context.Context, plantID string) (models.ActuatorState, error)
}

// Overrides manages the override ledger.
type Overrides interface {
	Submit(ctx context.Context, plantID string, p OverrideParams) error
	Remove(ctx context.Context, plantID string) (int, error)
}

type Statistics interface {
	Aggregate(ctx context.Context, plantID string, days int) ([]models.DailyAverage, error)
	Graphs(ctx context.Context, plantID string, days int) ([]models.Graph, error)
}

type Dashboard interface {
	Snapshot(ctx context.Context, plantID string) (models.Dashboard, error)
}

type Tokens interface {
	Bind(ctx context.Context, plantID, token string) ([]string, error)
}

// Alerts is the notification cooldown tracker.
type Alerts interface {
	ShouldNotify(ctx context.Context, plantID string, reason models.NotificationReason, value, threshold int, cooldown time.Duration) (bool, error)
	Evaluate(ctx context.Context, r models.Reading) ([]models.NotificationReason, error)
}

// Notifications exposes the dispatch history with filtering.
type Notifications interface {
	List(ctx context.Context, plantID string, f NotificationFilter) ([]models.NotificationRecord, error)
}

type Purge interface {
	IssueOperatorToken(operatorKey string) (string, error)
	ParseOperatorToken(accessToken string) error
	RequestPurge(ctx context.Context, plantID string) (models.PurgeTicket, int, error)
	ConfirmPurge(ctx context.Context, ticketID string, approve bool) (PurgeResult, error)
}

// Dispatcher delivers alerts in the background. Stop via context cancellation in main().
type Dispatcher interface {
	Enqueue(job Dispatch) bool
	Run(ctx context.Context)
}

// Pruner compacts the override ledger in the background.
type Pruner interface {
	PruneOnce(ctx context.Context) (int64, error)
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Readings
	Actuators
	Overrides
	Statistics
	Dashboard
	Tokens
	Alerts
	Notifications
	Purge
	Dispatcher Dispatcher
	Pruner     Pruner
}

// Deps are the outbound adapters. Nil members fall back to no-op implementations.
type Deps struct {
	Notifier  notifier.Notifier
	Publisher broker.Publisher
	Mirror    telemetry.Mirror
	Log       *logger.Logger
	Now       func() time.Time
}

func NewService(repos *repository.Repository, opts Options, deps Deps) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	if deps.Notifier == nil {
		deps.Notifier = notifier.NewLogNotifier(deps.Log)
	}
	if deps.Publisher == nil {
		deps.Publisher = broker.NoopPublisher{}
	}
	if deps.Mirror == nil {
		deps.Mirror = telemetry.NoopMirror{}
	}

	locks := newKeyedMutex()
	actuators := NewActuatorService(repos.Readings, repos.Overrides, opts.PumpMoistureThreshold, opts.OverrideValidity, now)
	publisher := &statePublisher{actuators: actuators, publisher: deps.Publisher, log: deps.Log}
	dispatcher := NewDispatchService(deps.Notifier, opts.Workers, opts.QueueSize, opts.SendTimeout, deps.Log)
	alerts := NewAlertService(repos.Notifications, repos.Tokens, dispatcher, locks, opts, deps.Log, now)

	return &Service{
		Readings:      NewReadingService(repos.Readings, alerts, deps.Mirror, publisher, deps.Log, now),
		Actuators:     actuators,
		Overrides:     NewOverrideService(repos.Overrides, locks, publisher, now),
		Statistics:    NewStatisticsService(repos.Readings, opts, now),
		Dashboard:     NewDashboardService(repos.Readings, actuators, opts),
		Tokens:        NewTokenService(repos.Tokens, locks),
		Alerts:        alerts,
		Notifications: NewNotificationService(repos.Notifications),
		Purge:         NewPurgeService(repos.Readings, repos.PurgeTickets, opts, now),
		Dispatcher:    dispatcher,
		Pruner:        NewPrunerService(repos.Overrides, opts.OverrideValidity, deps.Log, now),
	}
}
