package repository

import (
	"context"
	"database/sql"
	"time"

	"smart_plant/internal/models"
)

// ReadingRepo is the append-only store of sensor readings.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) (int64, error)
	Count(ctx context.Context, plantID string) (int, error)
	Latest(ctx context.Context, plantID string) (*models.Reading, error)
	// Between returns readings with from <= recorded_at < to, oldest first.
	Between(ctx context.Context, plantID string, from, to time.Time) ([]models.Reading, error)
	DeleteAll(ctx context.Context, plantID string) (int64, error)
}

// OverrideRepo is the append-only ledger of override requests.
type OverrideRepo interface {
	Append(ctx context.Context, o models.OverrideRequest) (int64, error)
	Latest(ctx context.Context, plantID string) (*models.OverrideRequest, error)
	DeleteAll(ctx context.Context, plantID string) (int64, error)
	Count(ctx context.Context, plantID string) (int, error)
	// PruneSuperseded removes rows that are not the newest of their plant and were requested before cutoff.
	PruneSuperseded(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationRepo stores one record per dispatch attempt.
type NotificationRepo interface {
	Append(ctx context.Context, n models.NotificationRecord) error
	LatestByReason(ctx context.Context, plantID string, reason models.NotificationReason) (*models.NotificationRecord, error)
	List(ctx context.Context, plantID string, from, to time.Time, reason models.NotificationReason) ([]models.NotificationRecord, error)
}

// TokenRepo stores push tokens per plant.
type TokenRepo interface {
	Get(ctx context.Context, plantID string) (models.TokenBinding, error)
	Save(ctx context.Context, b models.TokenBinding) error
}

// PurgeTicketStore keeps pending purge requests until an operator decides or they expire.
type PurgeTicketStore interface {
	Save(ctx context.Context, t models.PurgeTicket) error
	// Take returns and removes the ticket; (nil, nil) when unknown or expired.
	Take(ctx context.Context, id string) (*models.PurgeTicket, error)
}

type Repository struct {
	Readings      ReadingRepo
	Overrides     OverrideRepo
	Notifications NotificationRepo
	Tokens        TokenRepo
	PurgeTickets  PurgeTicketStore
}

// NewRepository builds the SQLite-backed repositories. tickets may be Redis- or memory-backed.
func NewRepository(db *sql.DB, tickets PurgeTicketStore) *Repository {
	return &Repository{
		Readings:      NewReadingSQLite(db),
		Overrides:     NewOverrideSQLite(db),
		Notifications: NewNotificationSQLite(db),
		Tokens:        NewTokenSQLite(db),
		PurgeTickets:  tickets,
	}
}

// toMillis and fromMillis convert between time.Time and the stored unix-millisecond columns.
func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
