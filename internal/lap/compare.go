package lap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/lap.report/internal/geo"
)

// Comparison holds the full output of comparing one lap against another
// by geographic proximity. All sequences indexed by reference sample are
// the same length as the reference lap.
type Comparison struct {
	Reference string   `json:"reference"`
	Other     string   `json:"other"`
	Zone      geo.Zone `json:"zone"`

	// Per reference sample.
	RefSpeeds     []float64 `json:"ref_speeds"`     // the reference lap's own speeds (m/s)
	MatchedSpeeds []float64 `json:"matched_speeds"` // other-lap speed at the nearest point (m/s)
	RefDistance   []float64 `json:"ref_distance"`   // cumulative meters along the reference lap

	// Per other-lap sample.
	OtherDistance []float64 `json:"other_distance"` // cumulative meters along the other lap

	Summary Summary `json:"summary"`
}

// Summary aggregates the per-sample speed deltas (matched minus
// reference, m/s) and the overall path lengths.
type Summary struct {
	MeanDelta   float64 `json:"mean_delta"`
	MaxAbsDelta float64 `json:"max_abs_delta"`
	StdDevDelta float64 `json:"stddev_delta"`
	RefLength   float64 `json:"ref_length"`
	OtherLength float64 `json:"other_length"`
}

// Compare aligns other against ref by spatial proximity. Both laps are
// projected in the zone selected from the reference lap's first sample so
// the two tracks share one planar frame.
func Compare(ref, other *Lap) (*Comparison, error) {
	if len(ref.Points) != len(ref.Speeds) {
		return nil, fmt.Errorf("lap %q: %d points, %d speeds: %w", ref.Name, len(ref.Points), len(ref.Speeds), geo.ErrLengthMismatch)
	}
	if len(other.Points) != len(other.Speeds) {
		return nil, fmt.Errorf("lap %q: %d points, %d speeds: %w", other.Name, len(other.Points), len(other.Speeds), geo.ErrLengthMismatch)
	}

	refTrack, zone, err := geo.ProjectTrack(ref.Points)
	if err != nil {
		return nil, fmt.Errorf("projecting lap %q: %w", ref.Name, err)
	}
	otherTrack, err := zone.Project(other.Points)
	if err != nil {
		return nil, fmt.Errorf("projecting lap %q: %w", other.Name, err)
	}

	matched, err := geo.NearestValues(refTrack, otherTrack, other.Speeds)
	if err != nil {
		return nil, fmt.Errorf("matching %q onto %q: %w", other.Name, ref.Name, err)
	}

	refDist, err := geo.CumulativeDistance(refTrack)
	if err != nil {
		return nil, err
	}
	otherDist, err := geo.CumulativeDistance(otherTrack)
	if err != nil {
		return nil, err
	}

	refSpeeds := make([]float64, len(ref.Speeds))
	copy(refSpeeds, ref.Speeds)

	return &Comparison{
		Reference:     ref.Name,
		Other:         other.Name,
		Zone:          zone,
		RefSpeeds:     refSpeeds,
		MatchedSpeeds: matched,
		RefDistance:   refDist,
		OtherDistance: otherDist,
		Summary:       summarise(refSpeeds, matched, refDist, otherDist),
	}, nil
}

func summarise(refSpeeds, matched, refDist, otherDist []float64) Summary {
	deltas := make([]float64, len(refSpeeds))
	absDeltas := make([]float64, len(refSpeeds))
	for i := range refSpeeds {
		deltas[i] = matched[i] - refSpeeds[i]
		absDeltas[i] = math.Abs(deltas[i])
	}

	s := Summary{
		MeanDelta:   stat.Mean(deltas, nil),
		MaxAbsDelta: floats.Max(absDeltas),
		RefLength:   refDist[len(refDist)-1],
		OtherLength: otherDist[len(otherDist)-1],
	}
	// StdDev needs at least two samples.
	if len(deltas) > 1 {
		s.StdDevDelta = stat.StdDev(deltas, nil)
	}
	return s
}
