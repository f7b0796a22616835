package units

import (
	"math"
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"empty unit", "", false},
		{"uppercase MPS", "MPS", false}, // Case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.unit); got != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, got, tt.expected)
			}
		})
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		unit     string
		expected float64
	}{
		{"0 m/s to mps", 0.0, MPS, 0.0},
		{"5 m/s to mps", 5.0, MPS, 5.0},
		{"1 m/s to mph", 1.0, MPH, 2.2369362920544},
		{"5 m/s to mph", 5.0, MPH, 11.184681460272},
		{"1 m/s to kmph", 1.0, KMPH, 3.6},
		{"5 m/s to kph", 5.0, KPH, 18.0},
		{"unknown unit falls back to mps", 1.0, "unknown", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertSpeed(tt.speedMPS, tt.unit); math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestRoundTripConversions(t *testing.T) {
	originalMPS := 15.5
	for _, unit := range ValidUnits {
		converted := ConvertSpeed(originalMPS, unit)
		back := ConvertToMPS(converted, unit)
		if math.Abs(back-originalMPS) > 1e-10 {
			t.Errorf("%s round-trip: started %f m/s, got %f m/s", unit, originalMPS, back)
		}
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"typical lap", 94344 * time.Millisecond, "1m34.344s"},
		{"slower lap", 113819 * time.Millisecond, "1m53.819s"},
		{"under a minute", 59900 * time.Millisecond, "0m59.900s"},
		{"exact minutes", 2 * time.Minute, "2m00.000s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLapTime(tt.duration); got != tt.expected {
				t.Errorf("FormatLapTime(%v) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}
