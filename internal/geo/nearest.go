package geo

import (
	"fmt"
	"math"
)

// NearestValues maps each reference-track point to the value carried by
// the geometrically closest candidate-track point. Comparison uses
// squared Euclidean distance, which preserves ordering and avoids the
// square root. A candidate only replaces the current best on a strict
// improvement, so equidistant candidates resolve to the lowest index.
//
// The scan is O(n*m); single-lap tracks run to a few thousand samples
// at most, so no spatial index is needed.
func NearestValues(ref, cand ProjectedTrack, values []float64) ([]float64, error) {
	if len(ref) == 0 {
		return nil, fmt.Errorf("reference track: %w", ErrEmptyTrack)
	}
	if len(cand) == 0 {
		return nil, fmt.Errorf("nothing to match against: %w", ErrEmptyCandidateTrack)
	}
	if len(cand) != len(values) {
		return nil, fmt.Errorf("%d candidate points, %d values: %w", len(cand), len(values), ErrLengthMismatch)
	}

	result := make([]float64, len(ref))
	for i, p := range ref {
		minDist := math.MaxFloat64
		minIndex := 0
		for j, q := range cand {
			dx := p.X - q.X
			dy := p.Y - q.Y
			dist := dx*dx + dy*dy
			if dist < minDist {
				minDist = dist
				minIndex = j
			}
		}
		result[i] = values[minIndex]
	}
	return result, nil
}
