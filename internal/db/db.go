// Package db persists laps and comparison results in sqlite.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// schema is the baseline schema, applied idempotently on open. Versioned
// changes on top of it go through the migrations in migrations/.
const schema = `
	CREATE TABLE IF NOT EXISTS lap (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		source_file    TEXT,
		utm_zone       INTEGER NOT NULL,
		hemisphere     TEXT NOT NULL,
		sample_count   INTEGER NOT NULL,
		track_length_m DOUBLE NOT NULL,
		created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS lap_sample (
		lap_id     INTEGER NOT NULL,
		idx        INTEGER NOT NULL,
		latitude   DOUBLE NOT NULL,
		longitude  DOUBLE NOT NULL,
		speed_mps  DOUBLE NOT NULL,
		PRIMARY KEY (lap_id, idx),
		FOREIGN KEY(lap_id) REFERENCES lap(id)
	);
	CREATE TABLE IF NOT EXISTS comparison (
		id                 TEXT PRIMARY KEY,
		reference_lap_id   INTEGER NOT NULL,
		other_lap_id       INTEGER NOT NULL,
		mean_delta_mps     DOUBLE NOT NULL,
		max_abs_delta_mps  DOUBLE NOT NULL,
		stddev_delta_mps   DOUBLE NOT NULL,
		ref_length_m       DOUBLE NOT NULL,
		other_length_m     DOUBLE NOT NULL,
		created_at         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(reference_lap_id) REFERENCES lap(id),
		FOREIGN KEY(other_lap_id) REFERENCES lap(id)
	);
`

// NewDB opens the database at path and ensures the baseline schema
// exists.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// OpenDB opens the database at path without touching the schema. Used by
// the migrate subcommand, where migrations manage the schema themselves.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &DB{db}, nil
}
