package geo

import (
	"fmt"
	"math"
)

// CumulativeDistance computes the running path length along a planar
// track. The first entry is always 0 and every later entry adds the
// straight-line length of the preceding segment, so the result is
// non-negative and non-decreasing.
func CumulativeDistance(track ProjectedTrack) ([]float64, error) {
	if len(track) == 0 {
		return nil, fmt.Errorf("cumulative distance undefined: %w", ErrEmptyTrack)
	}

	dist := make([]float64, len(track))
	for i := 1; i < len(track); i++ {
		dx := track[i].X - track[i-1].X
		dy := track[i].Y - track[i-1].Y
		dist[i] = dist[i-1] + math.Hypot(dx, dy)
	}
	return dist, nil
}
