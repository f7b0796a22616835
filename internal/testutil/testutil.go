// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/banshee-data/lap.report/internal/db"
	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// NewLapStore opens a fresh sqlite lap store in a temp directory.
func NewLapStore(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "laps.db"))
	if err != nil {
		t.Fatalf("failed to open test lap store: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// ParallelLap builds a straight test lap near Athens with the given
// latitude offset (degrees) and per-sample speeds. Samples are spaced
// ~10m apart eastward.
func ParallelLap(name string, latOffset float64, speeds []float64) *lap.Lap {
	const (
		lat0    = 38.0
		lon0    = 23.7
		lonStep = 0.000114 // ~10m at lat 38
	)
	l := &lap.Lap{Name: name, Speeds: speeds}
	for i := range speeds {
		l.Points = append(l.Points, geo.GeodeticPoint{
			Lat: lat0 + latOffset,
			Lon: lon0 + float64(i)*lonStep,
		})
	}
	return l
}

// SeedLap stores a lap and fails the test on error.
func SeedLap(t *testing.T, database *db.DB, l *lap.Lap) int64 {
	t.Helper()
	zone := geo.SelectZone(l.Points[0])
	track, err := zone.Project(l.Points)
	if err != nil {
		t.Fatalf("failed to project seed lap: %v", err)
	}
	dist, err := geo.CumulativeDistance(track)
	if err != nil {
		t.Fatalf("failed to measure seed lap: %v", err)
	}
	id, err := database.SaveLap(l, "", zone, dist[len(dist)-1])
	if err != nil {
		t.Fatalf("failed to seed lap: %v", err)
	}
	return id
}
