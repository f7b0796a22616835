// Package units provides shared constants and conversion helpers for the
// speed units used in lap reports.
package units

import (
	"fmt"
	"time"
)

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

const mpsToMph = 2.2369362920544

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// ConvertSpeed converts a speed from meters per second to the target
// units. Lap samples are stored in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedMPS
	case MPH:
		return speedMPS * mpsToMph
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// ConvertToMPS converts a speed in the given units back to meters per second.
func ConvertToMPS(speed float64, fromUnits string) float64 {
	switch fromUnits {
	case MPS:
		return speed
	case MPH:
		return speed / mpsToMph
	case KMPH, KPH:
		return speed / 3.6
	default:
		return speed
	}
}

// FormatLapTime renders a lap duration in the conventional
// minutes/seconds form, e.g. "1m34.344s".
func FormatLapTime(d time.Duration) string {
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins)*60
	return fmt.Sprintf("%dm%06.3fs", mins, secs)
}
