// Package geo projects geodetic lap coordinates into a local planar
// system and provides the proximity matching and arc-length primitives
// used to compare two laps sample-for-sample.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// GeodeticPoint is a WGS84 latitude/longitude pair in decimal degrees.
type GeodeticPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlanarPoint is a projected position in meters.
type PlanarPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProjectedTrack is an ordered sequence of planar points, index-aligned
// with the geodetic track it was projected from.
type ProjectedTrack []PlanarPoint

// Validation failures reported by the functions in this package. All are
// detected at entry; no partial results are returned.
var (
	ErrEmptyTrack          = errors.New("track has no samples")
	ErrEmptyCandidateTrack = errors.New("candidate track has no samples")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrLengthMismatch      = errors.New("track and value lengths differ")
)

// Zone identifies the UTM zone and hemisphere used to project a track.
// It is selected once per track and applied to every sample, so two laps
// projected with the same Zone share a common planar frame.
type Zone struct {
	Number int  `json:"number"`
	North  bool `json:"north"`
}

// SelectZone derives the zone and hemisphere from a single point.
// Longitude 180 falls outside the last 6-degree band and is clamped to
// zone 60.
func SelectZone(p GeodeticPoint) Zone {
	n := int(math.Floor((p.Lon+180)/6)) + 1
	if n > 60 {
		n = 60
	}
	if n < 1 {
		n = 1
	}
	return Zone{Number: n, North: p.Lat >= 0}
}

// CentralMeridian returns the zone's central meridian in degrees.
func (z Zone) CentralMeridian() float64 {
	return float64(z.Number-1)*6 - 180 + 3
}

func (z Zone) String() string {
	h := "N"
	if !z.North {
		h = "S"
	}
	return fmt.Sprintf("%d%s", z.Number, h)
}

func validPoint(p GeodeticPoint) bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ProjectTrack validates points, selects the zone from the first sample
// and projects every sample with that single zone. Later samples that
// stray into a neighbouring zone are still projected in the first
// sample's zone; laps are geographically local so the distortion is
// negligible.
func ProjectTrack(points []GeodeticPoint) (ProjectedTrack, Zone, error) {
	if len(points) == 0 {
		return nil, Zone{}, fmt.Errorf("cannot select projection zone: %w", ErrEmptyTrack)
	}
	if !validPoint(points[0]) {
		return nil, Zone{}, fmt.Errorf("sample 0 (lat=%v lon=%v): %w", points[0].Lat, points[0].Lon, ErrInvalidCoordinate)
	}

	zone := SelectZone(points[0])
	track, err := zone.Project(points)
	if err != nil {
		return nil, Zone{}, err
	}
	return track, zone, nil
}

// Project validates and projects a whole track in this zone. Used to
// bring a second lap into the planar frame already selected for the
// reference lap, so that distances between the two are comparable.
func (z Zone) Project(points []GeodeticPoint) (ProjectedTrack, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("zone %s: %w", z, ErrEmptyTrack)
	}
	for i, p := range points {
		if !validPoint(p) {
			return nil, fmt.Errorf("sample %d (lat=%v lon=%v): %w", i, p.Lat, p.Lon, ErrInvalidCoordinate)
		}
	}
	track := make(ProjectedTrack, len(points))
	for i, p := range points {
		track[i] = z.ToPlanar(p)
	}
	return track, nil
}
