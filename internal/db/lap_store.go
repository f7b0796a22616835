package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
)

// LapRecord is the stored metadata for one lap.
type LapRecord struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SourceFile   *string   `json:"source_file"`
	Zone         geo.Zone  `json:"zone"`
	SampleCount  int       `json:"sample_count"`
	TrackLengthM float64   `json:"track_length_m"`
	CreatedAt    time.Time `json:"created_at"`
}

func hemisphereString(z geo.Zone) string {
	if z.North {
		return "north"
	}
	return "south"
}

// SaveLap stores a lap and all its samples in one transaction and
// returns the new lap id.
func (db *DB) SaveLap(l *lap.Lap, sourceFile string, zone geo.Zone, trackLengthM float64) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var source *string
	if sourceFile != "" {
		source = &sourceFile
	}

	result, err := tx.Exec(
		`INSERT INTO lap (name, source_file, utm_zone, hemisphere, sample_count, track_length_m)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.Name, source, zone.Number, hemisphereString(zone), l.Len(), trackLengthM,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lap: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO lap_sample (lap_id, idx, latitude, longitude, speed_mps) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range l.Points {
		if _, err := stmt.Exec(id, i, p.Lat, p.Lon, l.Speeds[i]); err != nil {
			return 0, fmt.Errorf("failed to insert sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit lap: %w", err)
	}
	return id, nil
}

// GetLap reassembles a stored lap, samples in recorded order.
func (db *DB) GetLap(id int64) (*lap.Lap, error) {
	var name string
	err := db.QueryRow(`SELECT name FROM lap WHERE id = ?`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lap %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lap: %w", err)
	}

	rows, err := db.Query(
		`SELECT latitude, longitude, speed_mps FROM lap_sample WHERE lap_id = ? ORDER BY idx ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	l := &lap.Lap{Name: name}
	for rows.Next() {
		var lat, lon, speed float64
		if err := rows.Scan(&lat, &lon, &speed); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		l.Points = append(l.Points, geo.GeodeticPoint{Lat: lat, Lon: lon})
		l.Speeds = append(l.Speeds, speed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}
	return l, nil
}

// ListLaps returns metadata for every stored lap, newest first.
func (db *DB) ListLaps() ([]LapRecord, error) {
	rows, err := db.Query(`
		SELECT id, name, source_file, utm_zone, hemisphere, sample_count, track_length_m, created_at
		FROM lap
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query laps: %w", err)
	}
	defer rows.Close()

	var laps []LapRecord
	for rows.Next() {
		var rec LapRecord
		var hemisphere string
		var createdAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.SourceFile,
			&rec.Zone.Number,
			&hemisphere,
			&rec.SampleCount,
			&rec.TrackLengthM,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lap: %w", err)
		}
		rec.Zone.North = hemisphere == "north"
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			rec.CreatedAt = t
		}
		laps = append(laps, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating laps: %w", err)
	}
	return laps, nil
}

// DeleteLap removes a lap and its samples.
func (db *DB) DeleteLap(id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lap_sample WHERE lap_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete samples: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM lap WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lap: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lap %d not found", id)
	}
	return tx.Commit()
}
