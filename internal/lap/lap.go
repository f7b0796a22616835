// Package lap models a recorded lap (position plus speed per sample) and
// orchestrates the by-location comparison of two laps.
package lap

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/lap.report/internal/geo"
)

// Lap is one pass over a course: an ordered sequence of geodetic samples
// with the speed recorded at each. Speeds are stored in m/s. Points and
// Speeds are index-aligned and never mutated after loading.
type Lap struct {
	Name   string
	Points []geo.GeodeticPoint
	Speeds []float64
}

// Len returns the number of samples in the lap.
func (l *Lap) Len() int {
	return len(l.Points)
}

// ReadCSV loads a lap from delimited text with a header row followed by
// lat,lon,speed rows (decimal degrees and m/s). Column order is fixed;
// extra columns are ignored.
func ReadCSV(r io.Reader, name string) (*Lap, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip the header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("lap %q: empty file", name)
		}
		return nil, fmt.Errorf("lap %q: failed to read header: %w", name, err)
	}

	lap := &Lap{Name: name}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("lap %q row %d: %w", name, row, err)
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("lap %q row %d: expected lat,lon,speed, got %d fields", name, row, len(record))
		}

		lat, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("lap %q row %d: failed to parse latitude: %w", name, row, err)
		}
		lon, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("lap %q row %d: failed to parse longitude: %w", name, row, err)
		}
		speed, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("lap %q row %d: failed to parse speed: %w", name, row, err)
		}

		lap.Points = append(lap.Points, geo.GeodeticPoint{Lat: lat, Lon: lon})
		lap.Speeds = append(lap.Speeds, speed)
	}

	if lap.Len() == 0 {
		return nil, fmt.Errorf("lap %q: no samples after header", name)
	}
	return lap, nil
}
