package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart_plant/internal/models"

	"github.com/google/uuid"
)

type NotificationSQLite struct {
	db *sql.DB
}

func NewNotificationSQLite(db *sql.DB) *NotificationSQLite { return &NotificationSQLite{db: db} }

var _ NotificationRepo = (*NotificationSQLite)(nil)

const (
	insertNotificationSQL = `
		INSERT INTO notification_records (id, plant_id, reason, dispatched_at)
		VALUES (?, ?, ?, ?)
	`
	latestNotificationSQL = `SELECT id, plant_id, reason, dispatched_at FROM notification_records WHERE plant_id = ? AND reason = ? ORDER BY dispatched_at DESC LIMIT 1`
	listNotificationsSQL  = `SELECT id, plant_id, reason, dispatched_at FROM notification_records`
)

// Append inserts a record. If ID or DispatchedAt are empty, they're set.
func (r *NotificationSQLite) Append(ctx context.Context, n models.NotificationRecord) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.DispatchedAt.IsZero() {
		n.DispatchedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, insertNotificationSQL,
		n.ID,
		n.PlantID,
		strings.ToUpper(strings.TrimSpace(string(n.Reason))),
		toMillis(n.DispatchedAt),
	)
	if err != nil {
		return fmt.Errorf("insert notification record for plant %q: %w", n.PlantID, err)
	}
	return nil
}

// LatestByReason returns the most recent record of reason for the plant, or (nil, nil).
func (r *NotificationSQLite) LatestByReason(ctx context.Context, plantID string, reason models.NotificationReason) (*models.NotificationRecord, error) {
	rec, err := scanNotification(r.db.QueryRowContext(ctx, latestNotificationSQL, plantID, string(reason)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest %s notification for plant %q: %w", reason, plantID, err)
	}
	return &rec, nil
}

// List returns the plant's records filtered by [from, to] (inclusive) and/or reason, ordered ASC.
func (r *NotificationSQLite) List(ctx context.Context, plantID string, from, to time.Time, reason models.NotificationReason) ([]models.NotificationRecord, error) {
	conds := []string{"plant_id = ?"}
	args := []any{plantID}

	if !from.IsZero() {
		conds = append(conds, "dispatched_at >= ?")
		args = append(args, toMillis(from))
	}
	if !to.IsZero() {
		conds = append(conds, "dispatched_at <= ?")
		args = append(args, toMillis(to))
	}
	if typ := strings.ToUpper(strings.TrimSpace(string(reason))); typ != "" {
		conds = append(conds, "reason = ?")
		args = append(args, typ)
	}

	q := listNotificationsSQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY dispatched_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications for plant %q: %w", plantID, err)
	}
	defer rows.Close()

	out := make([]models.NotificationRecord, 0, 16)
	for rows.Next() {
		rec, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanNotification(s rowScanner) (models.NotificationRecord, error) {
	var (
		rec    models.NotificationRecord
		reason string
		ms     int64
	)
	if err := s.Scan(&rec.ID, &rec.PlantID, &reason, &ms); err != nil {
		return models.NotificationRecord{}, err
	}
	rec.Reason = models.NotificationReason(reason)
	rec.DispatchedAt = fromMillis(ms)
	return rec, nil
}
