package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"entropy/internal/sims/entropy"
)

// ErrNoSamples is returned when a chart is requested before any frame.
var ErrNoSamples = errors.New("record: no population samples")

// Population accumulates per-material cell counts over time.
type Population struct {
	Ticks  []float64
	Counts [entropy.NumMaterials][]float64
}

// Add samples the counts of f.
func (p *Population) Add(f entropy.Frame) {
	counts := entropy.Census(f.Cells)
	p.Ticks = append(p.Ticks, float64(f.Tick))
	for m := range p.Counts {
		p.Counts[m] = append(p.Counts[m], float64(counts[m]))
	}
}

// Peak returns the largest count seen for m.
func (p *Population) Peak(m entropy.Material) float64 {
	if !m.Valid() {
		return 0
	}
	peak := 0.0
	for _, v := range p.Counts[m] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// WriteChart renders a PNG line chart with one series per material that
// appeared during the run.
func WriteChart(w io.Writer, p *Population, width, height int) error {
	if len(p.Ticks) == 0 {
		return ErrNoSamples
	}

	var series []chart.Series
	yMax := 1.0
	for _, m := range entropy.Materials()[1:] {
		peak := p.Peak(m)
		if peak == 0 {
			continue
		}
		if peak > yMax {
			yMax = peak
		}
		col := m.Color()
		series = append(series, chart.ContinuousSeries{
			Name:    m.String(),
			XValues: p.Ticks,
			YValues: p.Counts[m],
			Style: chart.Style{
				StrokeColor: drawing.Color{R: col.R, G: col.G, B: col.B, A: 255},
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return ErrNoSamples
	}

	xMin, xMax := p.Ticks[0], p.Ticks[len(p.Ticks)-1]
	if xMax <= xMin {
		xMax = xMin + 1
	}
	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
