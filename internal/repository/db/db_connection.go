package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection serializes writers; readings and overrides are small rows.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

// Timestamps are stored as unix milliseconds so ordering and range filters stay numeric.
const schemaReadings = `
CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plant_id TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,
    soil_moisture INTEGER NOT NULL,
    light_intensity INTEGER NOT NULL,
    water_level INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_plant_time ON readings (plant_id, recorded_at);
`

const schemaOverrides = `
CREATE TABLE IF NOT EXISTS override_requests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plant_id TEXT NOT NULL,
    requested_at INTEGER NOT NULL,
    lamp_intensity INTEGER NOT NULL,
    water_pump BOOLEAN NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_overrides_plant_time ON override_requests (plant_id, requested_at);
`

const schemaNotifications = `
CREATE TABLE IF NOT EXISTS notification_records (
    id TEXT PRIMARY KEY,
    plant_id TEXT NOT NULL,
    reason TEXT NOT NULL,
    dispatched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_plant_reason ON notification_records (plant_id, reason, dispatched_at);
`

const schemaTokenBindings = `
CREATE TABLE IF NOT EXISTS token_bindings (
    plant_id TEXT PRIMARY KEY,
    tokens TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaReadings,
		schemaOverrides,
		schemaNotifications,
		schemaTokenBindings,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
