package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/lap.report/internal/lap"
)

// ComparisonRecord is a stored comparison run between two laps.
type ComparisonRecord struct {
	ID             string    `json:"id"`
	ReferenceLapID int64     `json:"reference_lap_id"`
	OtherLapID     int64     `json:"other_lap_id"`
	MeanDeltaMPS   float64   `json:"mean_delta_mps"`
	MaxAbsDeltaMPS float64   `json:"max_abs_delta_mps"`
	StdDevDeltaMPS float64   `json:"stddev_delta_mps"`
	RefLengthM     float64   `json:"ref_length_m"`
	OtherLengthM   float64   `json:"other_length_m"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecordComparison stores the summary of a comparison run and returns the
// generated id.
func (db *DB) RecordComparison(refLapID, otherLapID int64, s lap.Summary) (string, error) {
	id := fmt.Sprintf("cmp_%s", uuid.NewString())

	_, err := db.Exec(
		`INSERT INTO comparison (
			id, reference_lap_id, other_lap_id,
			mean_delta_mps, max_abs_delta_mps, stddev_delta_mps,
			ref_length_m, other_length_m
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, refLapID, otherLapID,
		s.MeanDelta, s.MaxAbsDelta, s.StdDevDelta,
		s.RefLength, s.OtherLength,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record comparison: %w", err)
	}
	return id, nil
}

// ListComparisons returns the most recent comparison runs, newest first.
func (db *DB) ListComparisons(limit int) ([]ComparisonRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(`
		SELECT id, reference_lap_id, other_lap_id,
		       mean_delta_mps, max_abs_delta_mps, stddev_delta_mps,
		       ref_length_m, other_length_m, created_at
		FROM comparison
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var comparisons []ComparisonRecord
	for rows.Next() {
		var rec ComparisonRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.ReferenceLapID,
			&rec.OtherLapID,
			&rec.MeanDeltaMPS,
			&rec.MaxAbsDeltaMPS,
			&rec.StdDevDeltaMPS,
			&rec.RefLengthM,
			&rec.OtherLengthM,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			rec.CreatedAt = t
		}
		comparisons = append(comparisons, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comparisons: %w", err)
	}
	return comparisons, nil
}
