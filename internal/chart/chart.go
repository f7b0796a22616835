// Package chart renders lap comparison results as HTML charts
// (go-echarts) and static PNGs (gonum/plot).
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
	"github.com/banshee-data/lap.report/internal/units"
)

// SpeedComparison builds a line chart of the reference lap's speed
// against the matched other-lap speed, over reference sample index.
func SpeedComparison(c *lap.Comparison, targetUnits string) *charts.Line {
	n := len(c.RefSpeeds)
	x := make([]int, n)
	refData := make([]opts.LineData, n)
	matchedData := make([]opts.LineData, n)
	for i := 0; i < n; i++ {
		x[i] = i
		refData[i] = opts.LineData{Value: units.ConvertSpeed(c.RefSpeeds[i], targetUnits)}
		matchedData[i] = opts.LineData{Value: units.ConvertSpeed(c.MatchedSpeeds[i], targetUnits)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Lap Speed Comparison", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Lap Speed Comparison",
			Subtitle: fmt.Sprintf("%s vs %s (zone %s)", c.Reference, c.Other, c.Zone),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample Index", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Speed (%s)", targetUnits), NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(x).
		AddSeries(c.Reference, refData).
		AddSeries(fmt.Sprintf("%s (closest)", c.Other), matchedData)
	return line
}

// CumulativeDistanceChart builds a line chart of both laps' running path
// length over sample index.
func CumulativeDistanceChart(c *lap.Comparison) *charts.Line {
	n := len(c.RefDistance)
	if len(c.OtherDistance) > n {
		n = len(c.OtherDistance)
	}
	x := make([]int, n)
	for i := range x {
		x[i] = i
	}
	refData := make([]opts.LineData, len(c.RefDistance))
	for i, d := range c.RefDistance {
		refData[i] = opts.LineData{Value: d}
	}
	otherData := make([]opts.LineData, len(c.OtherDistance))
	for i, d := range c.OtherDistance {
		otherData[i] = opts.LineData{Value: d}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Cumulative Distance", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cumulative Distance",
			Subtitle: fmt.Sprintf("%s vs %s", c.Reference, c.Other),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample Index", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance (m)", NameLocation: "middle", NameGap: 50}),
	)
	line.SetXAxis(x).
		AddSeries(c.Reference, refData).
		AddSeries(c.Other, otherData)
	return line
}

// TrackMap builds a square scatter plot of both laps in planar space.
func TrackMap(refName string, ref geo.ProjectedTrack, otherName string, other geo.ProjectedTrack) *charts.Scatter {
	// Center on the reference track's first point and use symmetric axis
	// ranges so the course is not distorted.
	var x0, y0 float64
	if len(ref) > 0 {
		x0, y0 = ref[0].X, ref[0].Y
	}

	maxAbs := 0.0
	toData := func(track geo.ProjectedTrack) []opts.ScatterData {
		data := make([]opts.ScatterData, 0, len(track))
		for _, p := range track {
			x := p.X - x0
			y := p.Y - y0
			if ax := abs(x); ax > maxAbs {
				maxAbs = ax
			}
			if ay := abs(y); ay > maxAbs {
				maxAbs = ay
			}
			data = append(data, opts.ScatterData{Value: []interface{}{x, y}})
		}
		return data
	}
	refData := toData(ref)
	otherData := toData(other)

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Track Map", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Track Map", Subtitle: fmt.Sprintf("%s vs %s", refName, otherName)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries(refName, refData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	scatter.AddSeries(otherName, otherData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	return scatter
}

// WriteReport renders the speed and distance charts as a single HTML
// page.
func WriteReport(w io.Writer, c *lap.Comparison, targetUnits string) error {
	page := components.NewPage()
	page.AddCharts(SpeedComparison(c, targetUnits), CumulativeDistanceChart(c))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
