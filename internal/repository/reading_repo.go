package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smart_plant/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	insertReadingSQL  = `INSERT INTO readings (plant_id, recorded_at, soil_moisture, light_intensity, water_level) VALUES (?, ?, ?, ?, ?)`
	countReadingsSQL  = `SELECT COUNT(*) FROM readings WHERE plant_id = ?`
	latestReadingSQL  = `SELECT id, plant_id, recorded_at, soil_moisture, light_intensity, water_level FROM readings WHERE plant_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`
	rangeReadingsSQL  = `SELECT id, plant_id, recorded_at, soil_moisture, light_intensity, water_level FROM readings WHERE plant_id = ? AND recorded_at >= ? AND recorded_at < ? ORDER BY recorded_at ASC, id ASC`
	deleteReadingsSQL = `DELETE FROM readings WHERE plant_id = ?`
)

// Append stores a reading and returns its row id. A zero RecordedAt is stamped with the current time.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) (int64, error) {
	if rd.RecordedAt.IsZero() {
		rd.RecordedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.PlantID,
		toMillis(rd.RecordedAt),
		rd.SoilMoisture,
		rd.LightIntensity,
		rd.WaterLevel,
	)
	if err != nil {
		return 0, fmt.Errorf("insert reading for plant %q: %w", rd.PlantID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for reading of plant %q: %w", rd.PlantID, err)
	}
	return id, nil
}

func (r *ReadingSQLite) Count(ctx context.Context, plantID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countReadingsSQL, plantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count readings for plant %q: %w", plantID, err)
	}
	return n, nil
}

// Latest returns the newest reading by timestamp, or (nil, nil) if the plant has none.
func (r *ReadingSQLite) Latest(ctx context.Context, plantID string) (*models.Reading, error) {
	rd, err := scanReading(r.db.QueryRowContext(ctx, latestReadingSQL, plantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest reading for plant %q: %w", plantID, err)
	}
	return &rd, nil
}

func (r *ReadingSQLite) Between(ctx context.Context, plantID string, from, to time.Time) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, rangeReadingsSQL, plantID, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("select readings for plant %q: %w", plantID, err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, 64)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReadingSQLite) DeleteAll(ctx context.Context, plantID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteReadingsSQL, plantID)
	if err != nil {
		return 0, fmt.Errorf("delete readings for plant %q: %w", plantID, err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(s rowScanner) (models.Reading, error) {
	var (
		rd models.Reading
		ms int64
	)
	if err := s.Scan(&rd.ID, &rd.PlantID, &ms, &rd.SoilMoisture, &rd.LightIntensity, &rd.WaterLevel); err != nil {
		return models.Reading{}, err
	}
	rd.RecordedAt = fromMillis(ms)
	return rd, nil
}
