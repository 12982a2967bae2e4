package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smart_plant/internal/models"
)

type OverrideSQLite struct {
	db *sql.DB
}

func NewOverrideSQLite(db *sql.DB) *OverrideSQLite {
	return &OverrideSQLite{db: db}
}

var _ OverrideRepo = (*OverrideSQLite)(nil)

const (
	insertOverrideSQL  = `INSERT INTO override_requests (plant_id, requested_at, lamp_intensity, water_pump) VALUES (?, ?, ?, ?)`
	latestOverrideSQL  = `SELECT id, plant_id, requested_at, lamp_intensity, water_pump FROM override_requests WHERE plant_id = ? ORDER BY requested_at DESC, id DESC LIMIT 1`
	deleteOverridesSQL = `DELETE FROM override_requests WHERE plant_id = ?`
	countOverridesSQL  = `SELECT COUNT(*) FROM override_requests WHERE plant_id = ?`

	// Keeps the newest row per plant even when it is older than the cutoff.
	pruneOverridesSQL = `
		DELETE FROM override_requests
		WHERE requested_at < ?
		  AND id NOT IN (
			SELECT (SELECT o2.id FROM override_requests o2
			        WHERE o2.plant_id = o1.plant_id
			        ORDER BY o2.requested_at DESC, o2.id DESC LIMIT 1)
			FROM override_requests o1 GROUP BY o1.plant_id
		  )
	`
)

func (r *OverrideSQLite) Append(ctx context.Context, o models.OverrideRequest) (int64, error) {
	if o.RequestedAt.IsZero() {
		o.RequestedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertOverrideSQL, o.PlantID, toMillis(o.RequestedAt), o.LampIntensity, o.WaterPump)
	if err != nil {
		return 0, fmt.Errorf("insert override for plant %q: %w", o.PlantID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for override of plant %q: %w", o.PlantID, err)
	}
	return id, nil
}

// Latest returns the newest override by timestamp, or (nil, nil) if the ledger is empty.
func (r *OverrideSQLite) Latest(ctx context.Context, plantID string) (*models.OverrideRequest, error) {
	var (
		o  models.OverrideRequest
		ms int64
	)
	err := r.db.QueryRowContext(ctx, latestOverrideSQL, plantID).
		Scan(&o.ID, &o.PlantID, &ms, &o.LampIntensity, &o.WaterPump)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest override for plant %q: %w", plantID, err)
	}
	o.RequestedAt = fromMillis(ms)
	return &o, nil
}

func (r *OverrideSQLite) DeleteAll(ctx context.Context, plantID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteOverridesSQL, plantID)
	if err != nil {
		return 0, fmt.Errorf("delete overrides for plant %q: %w", plantID, err)
	}
	return res.RowsAffected()
}

func (r *OverrideSQLite) Count(ctx context.Context, plantID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countOverridesSQL, plantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count overrides for plant %q: %w", plantID, err)
	}
	return n, nil
}

func (r *OverrideSQLite) PruneSuperseded(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, pruneOverridesSQL, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune overrides before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return res.RowsAffected()
}
