package geo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNearestValuesClosestWins(t *testing.T) {
	// Candidates at distances 5, 1 and 3 from the single reference point;
	// the closest (index 1) carries the value.
	ref := ProjectedTrack{{X: 0, Y: 0}}
	cand := ProjectedTrack{{X: 5, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}}
	values := []float64{10, 20, 30}

	got, err := NearestValues(ref, cand, values)
	if err != nil {
		t.Fatalf("NearestValues: %v", err)
	}
	if diff := cmp.Diff([]float64{20}, got); diff != "" {
		t.Errorf("matched values mismatch (-want +got):\n%s", diff)
	}
}

func TestNearestValuesTieBreaksToLowestIndex(t *testing.T) {
	ref := ProjectedTrack{{X: 0, Y: 0}}
	cand := ProjectedTrack{{X: 2, Y: 0}, {X: -2, Y: 0}, {X: 9, Y: 0}}
	values := []float64{100, 200, 300}

	got, err := NearestValues(ref, cand, values)
	if err != nil {
		t.Fatalf("NearestValues: %v", err)
	}
	if got[0] != 100 {
		t.Errorf("tie resolved to value %v, want 100 (lowest candidate index)", got[0])
	}
}

func TestNearestValuesParallelLines(t *testing.T) {
	// Two straight parallel lines one meter apart with equal sample
	// spacing: every reference sample matches its same-index counterpart.
	ref := ProjectedTrack{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}}
	cand := ProjectedTrack{{X: 0, Y: 1}, {X: 10, Y: 1}, {X: 20, Y: 1}, {X: 30, Y: 1}}
	values := []float64{1, 2, 3, 4}

	got, err := NearestValues(ref, cand, values)
	if err != nil {
		t.Fatalf("NearestValues: %v", err)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Errorf("matched values mismatch (-want +got):\n%s", diff)
	}
}

func TestNearestValuesResultLength(t *testing.T) {
	ref := ProjectedTrack{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
	cand := ProjectedTrack{{X: 0, Y: 0}, {X: 4, Y: 4}}
	values := []float64{7, 9}

	got, err := NearestValues(ref, cand, values)
	if err != nil {
		t.Fatalf("NearestValues: %v", err)
	}
	if len(got) != len(ref) {
		t.Errorf("result length = %d, want %d", len(got), len(ref))
	}
}

func TestNearestValuesErrors(t *testing.T) {
	tests := []struct {
		name    string
		ref     ProjectedTrack
		cand    ProjectedTrack
		values  []float64
		wantErr error
	}{
		{"empty reference", nil, ProjectedTrack{{X: 1, Y: 1}}, []float64{1}, ErrEmptyTrack},
		{"empty candidates", ProjectedTrack{{X: 0, Y: 0}}, nil, nil, ErrEmptyCandidateTrack},
		{"length mismatch", ProjectedTrack{{X: 0, Y: 0}}, ProjectedTrack{{X: 1, Y: 1}}, []float64{1, 2}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NearestValues(tt.ref, tt.cand, tt.values)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
