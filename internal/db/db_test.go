package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewDB(filepath.Join(t.TempDir(), "laps.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testLap() *lap.Lap {
	return &lap.Lap{
		Name: "1m34.344s",
		Points: []geo.GeodeticPoint{
			{Lat: 38.0000, Lon: 23.7000},
			{Lat: 38.0001, Lon: 23.7001},
			{Lat: 38.0002, Lon: 23.7002},
		},
		Speeds: []float64{41.5, 42.0, 40.25},
	}
}

func TestSaveAndGetLap(t *testing.T) {
	database := newTestDB(t)

	zone := geo.Zone{Number: 34, North: true}
	id, err := database.SaveLap(testLap(), "1m34.344s.csv", zone, 27.5)
	if err != nil {
		t.Fatalf("SaveLap: %v", err)
	}
	if id == 0 {
		t.Fatal("SaveLap returned zero id")
	}

	got, err := database.GetLap(id)
	if err != nil {
		t.Fatalf("GetLap: %v", err)
	}
	if diff := cmp.Diff(testLap(), got); diff != "" {
		t.Errorf("lap round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetLapNotFound(t *testing.T) {
	database := newTestDB(t)

	_, err := database.GetLap(9999)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetLap(9999) error = %v, want not found", err)
	}
}

func TestListLaps(t *testing.T) {
	database := newTestDB(t)

	zone := geo.Zone{Number: 34, North: true}
	if _, err := database.SaveLap(testLap(), "a.csv", zone, 27.5); err != nil {
		t.Fatalf("SaveLap: %v", err)
	}
	second := testLap()
	second.Name = "1m53.819s"
	if _, err := database.SaveLap(second, "", zone, 31.0); err != nil {
		t.Fatalf("SaveLap: %v", err)
	}

	laps, err := database.ListLaps()
	if err != nil {
		t.Fatalf("ListLaps: %v", err)
	}
	if len(laps) != 2 {
		t.Fatalf("ListLaps returned %d laps, want 2", len(laps))
	}
	for _, rec := range laps {
		if rec.Zone != zone {
			t.Errorf("lap %d zone = %v, want %v", rec.ID, rec.Zone, zone)
		}
		if rec.SampleCount != 3 {
			t.Errorf("lap %d sample count = %d, want 3", rec.ID, rec.SampleCount)
		}
	}
	// Empty source file is stored as NULL.
	var sawNilSource bool
	for _, rec := range laps {
		if rec.SourceFile == nil {
			sawNilSource = true
		}
	}
	if !sawNilSource {
		t.Error("expected one lap with nil source file")
	}
}

func TestDeleteLap(t *testing.T) {
	database := newTestDB(t)

	zone := geo.Zone{Number: 34, North: true}
	id, err := database.SaveLap(testLap(), "", zone, 27.5)
	if err != nil {
		t.Fatalf("SaveLap: %v", err)
	}

	if err := database.DeleteLap(id); err != nil {
		t.Fatalf("DeleteLap: %v", err)
	}
	if _, err := database.GetLap(id); err == nil {
		t.Error("GetLap succeeded after delete")
	}
	if err := database.DeleteLap(id); err == nil {
		t.Error("DeleteLap succeeded twice")
	}
}

func TestRecordAndListComparisons(t *testing.T) {
	database := newTestDB(t)

	zone := geo.Zone{Number: 34, North: true}
	refID, err := database.SaveLap(testLap(), "", zone, 27.5)
	if err != nil {
		t.Fatalf("SaveLap: %v", err)
	}
	other := testLap()
	other.Name = "1m53.819s"
	otherID, err := database.SaveLap(other, "", zone, 31.0)
	if err != nil {
		t.Fatalf("SaveLap: %v", err)
	}

	summary := lap.Summary{
		MeanDelta:   -2.5,
		MaxAbsDelta: 7.25,
		StdDevDelta: 1.5,
		RefLength:   27.5,
		OtherLength: 31.0,
	}
	id, err := database.RecordComparison(refID, otherID, summary)
	if err != nil {
		t.Fatalf("RecordComparison: %v", err)
	}
	if !strings.HasPrefix(id, "cmp_") {
		t.Errorf("comparison id = %q, want cmp_ prefix", id)
	}

	comparisons, err := database.ListComparisons(10)
	if err != nil {
		t.Fatalf("ListComparisons: %v", err)
	}
	if len(comparisons) != 1 {
		t.Fatalf("ListComparisons returned %d rows, want 1", len(comparisons))
	}
	rec := comparisons[0]
	if rec.ID != id || rec.ReferenceLapID != refID || rec.OtherLapID != otherID {
		t.Errorf("comparison record = %+v", rec)
	}
	if rec.MeanDeltaMPS != -2.5 || rec.MaxAbsDeltaMPS != 7.25 {
		t.Errorf("comparison deltas = %+v", rec)
	}
}
