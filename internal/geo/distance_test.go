package geo

import (
	"errors"
	"math"
	"testing"
)

func TestCumulativeDistanceStartsAtZero(t *testing.T) {
	dist, err := CumulativeDistance(ProjectedTrack{{X: 12, Y: 34}})
	if err != nil {
		t.Fatalf("CumulativeDistance: %v", err)
	}
	if len(dist) != 1 || dist[0] != 0 {
		t.Errorf("single-point track distance = %v, want [0]", dist)
	}
}

func TestCumulativeDistanceKnownSpacing(t *testing.T) {
	// Four collinear points 10m apart.
	track := ProjectedTrack{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}}

	dist, err := CumulativeDistance(track)
	if err != nil {
		t.Fatalf("CumulativeDistance: %v", err)
	}

	want := []float64{0, 10, 20, 30}
	for i := range want {
		if math.Abs(dist[i]-want[i]) > 1e-9 {
			t.Errorf("dist[%d] = %v, want %v", i, dist[i], want[i])
		}
	}
}

func TestCumulativeDistanceDiagonal(t *testing.T) {
	track := ProjectedTrack{{X: 0, Y: 0}, {X: 3, Y: 4}}

	dist, err := CumulativeDistance(track)
	if err != nil {
		t.Fatalf("CumulativeDistance: %v", err)
	}
	if math.Abs(dist[1]-5) > 1e-9 {
		t.Errorf("dist[1] = %v, want 5", dist[1])
	}
}

func TestCumulativeDistanceMonotonic(t *testing.T) {
	track := ProjectedTrack{
		{X: 0, Y: 0},
		{X: 1.5, Y: -2},
		{X: 1.5, Y: -2}, // repeated point contributes zero length
		{X: -4, Y: 7},
		{X: 100, Y: 100},
	}

	dist, err := CumulativeDistance(track)
	if err != nil {
		t.Fatalf("CumulativeDistance: %v", err)
	}
	if dist[0] != 0 {
		t.Errorf("dist[0] = %v, want 0", dist[0])
	}
	for i := 1; i < len(dist); i++ {
		if dist[i] < dist[i-1] {
			t.Errorf("dist[%d] = %v < dist[%d] = %v", i, dist[i], i-1, dist[i-1])
		}
	}
	if dist[2] != dist[1] {
		t.Errorf("repeated point added length: dist[2] = %v, dist[1] = %v", dist[2], dist[1])
	}
}

func TestCumulativeDistanceEmpty(t *testing.T) {
	_, err := CumulativeDistance(nil)
	if !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("CumulativeDistance(nil) error = %v, want ErrEmptyTrack", err)
	}
}
