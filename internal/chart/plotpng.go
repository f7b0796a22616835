package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/lap.report/internal/lap"
	"github.com/banshee-data/lap.report/internal/units"
)

// SaveSpeedPNG writes the speed comparison as a static PNG for offline
// reports.
func SaveSpeedPNG(c *lap.Comparison, targetUnits, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Lap Speed Comparison: %s vs %s", c.Reference, c.Other)
	p.X.Label.Text = "Sample Index"
	p.Y.Label.Text = fmt.Sprintf("Speed (%s)", targetUnits)

	refPts := make(plotter.XYs, len(c.RefSpeeds))
	matchedPts := make(plotter.XYs, len(c.MatchedSpeeds))
	for i := range c.RefSpeeds {
		refPts[i] = plotter.XY{X: float64(i), Y: units.ConvertSpeed(c.RefSpeeds[i], targetUnits)}
		matchedPts[i] = plotter.XY{X: float64(i), Y: units.ConvertSpeed(c.MatchedSpeeds[i], targetUnits)}
	}

	refLine, err := plotter.NewLine(refPts)
	if err != nil {
		return fmt.Errorf("failed to build reference series: %w", err)
	}
	refLine.Width = vg.Points(1)
	matchedLine, err := plotter.NewLine(matchedPts)
	if err != nil {
		return fmt.Errorf("failed to build matched series: %w", err)
	}
	matchedLine.Width = vg.Points(1)
	matchedLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(refLine, matchedLine)
	p.Legend.Add(c.Reference, refLine)
	p.Legend.Add(fmt.Sprintf("%s (closest)", c.Other), matchedLine)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save speed plot: %w", err)
	}
	return nil
}

// SaveDistancePNG writes both laps' cumulative distance curves as a
// static PNG.
func SaveDistancePNG(c *lap.Comparison, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cumulative Distance: %s vs %s", c.Reference, c.Other)
	p.X.Label.Text = "Sample Index"
	p.Y.Label.Text = "Distance (m)"

	refPts := make(plotter.XYs, len(c.RefDistance))
	for i, d := range c.RefDistance {
		refPts[i] = plotter.XY{X: float64(i), Y: d}
	}
	otherPts := make(plotter.XYs, len(c.OtherDistance))
	for i, d := range c.OtherDistance {
		otherPts[i] = plotter.XY{X: float64(i), Y: d}
	}

	refLine, err := plotter.NewLine(refPts)
	if err != nil {
		return fmt.Errorf("failed to build reference series: %w", err)
	}
	refLine.Width = vg.Points(1)
	otherLine, err := plotter.NewLine(otherPts)
	if err != nil {
		return fmt.Errorf("failed to build other series: %w", err)
	}
	otherLine.Width = vg.Points(1)
	otherLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(refLine, otherLine)
	p.Legend.Add(c.Reference, refLine)
	p.Legend.Add(c.Other, otherLine)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save distance plot: %w", err)
	}
	return nil
}
