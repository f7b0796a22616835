package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
	"github.com/banshee-data/lap.report/internal/units"
)

func testComparison() *lap.Comparison {
	return &lap.Comparison{
		Reference:     "1m34.344s",
		Other:         "1m53.819s",
		Zone:          geo.Zone{Number: 34, North: true},
		RefSpeeds:     []float64{40, 41, 42, 43},
		MatchedSpeeds: []float64{30, 31, 32, 33},
		RefDistance:   []float64{0, 10, 20, 30},
		OtherDistance: []float64{0, 10, 20, 30},
		Summary:       lap.Summary{MeanDelta: -10, MaxAbsDelta: 10, RefLength: 30, OtherLength: 30},
	}
}

func TestWriteReportContainsBothSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, testComparison(), units.KPH); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Lap Speed Comparison", "Cumulative Distance", "1m34.344s", "1m53.819s (closest)"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestTrackMapRenders(t *testing.T) {
	ref := geo.ProjectedTrack{{X: 500000, Y: 4200000}, {X: 500010, Y: 4200000}}
	other := geo.ProjectedTrack{{X: 500000, Y: 4200001}, {X: 500010, Y: 4200001}}

	scatter := TrackMap("1m34.344s", ref, "1m53.819s", other)

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Track Map") {
		t.Error("track map output missing title")
	}
}

func TestSavePNGs(t *testing.T) {
	dir := t.TempDir()
	c := testComparison()

	speedPath := filepath.Join(dir, "speed.png")
	if err := SaveSpeedPNG(c, units.MPS, speedPath); err != nil {
		t.Fatalf("SaveSpeedPNG: %v", err)
	}
	distPath := filepath.Join(dir, "distance.png")
	if err := SaveDistancePNG(c, distPath); err != nil {
		t.Fatalf("SaveDistancePNG: %v", err)
	}

	for _, path := range []string{speedPath, distPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}
