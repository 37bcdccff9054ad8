// Package charts renders the dashboard figures as PNG images. Each
// renderer takes the analysis output, builds a gonum plot, and returns
// the encoded bytes so the HTTP layer can cache and serve them.
package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/analysis"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var seriesPalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// PopulationTrends draws one line per species: summed population by year.
// Years where a species has no observations break the line.
func PopulationTrends(t analysis.YearlyTrends) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Bird Population Trends by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total Population"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, species := range t.Species {
		pop := t.Population[species]
		var xys plotter.XYs
		for j, year := range t.Years {
			if math.IsNaN(pop[j]) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(year), Y: pop[j]})
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("population line for %q: %w", species, err)
		}
		c := seriesPalette[i%len(seriesPalette)]
		line.Color = c
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(2)
		p.Add(line, points)
		p.Legend.Add(species, line)
	}
	return encodePNG(p)
}

// ShiftExtremes draws grouped bars per result row: the maximum migration
// shift next to the temperature observed on that row.
func ShiftExtremes(rows []analysis.ShiftExtreme) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Maximum Migration Shift per Country, Species and Year"
	p.Y.Label.Text = "km / °C"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	shifts := make(plotter.Values, len(rows))
	temps := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		shifts[i] = r.MaxShiftKm
		temps[i] = r.Temperature
		labels[i] = fmt.Sprintf("%s %s %d", r.Country, r.Species, r.Year)
	}

	barWidth := vg.Points(8)
	shiftBars, err := plotter.NewBarChart(shifts, barWidth)
	if err != nil {
		return nil, fmt.Errorf("shift bars: %w", err)
	}
	shiftBars.Color = seriesPalette[0]
	shiftBars.Offset = -barWidth / 2

	tempBars, err := plotter.NewBarChart(temps, barWidth)
	if err != nil {
		return nil, fmt.Errorf("temperature bars: %w", err)
	}
	tempBars.Color = seriesPalette[1]
	tempBars.Offset = barWidth / 2

	p.Add(shiftBars, tempBars)
	p.Legend.Add("max shift (km)", shiftBars)
	p.Legend.Add("temperature (°C)", tempBars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return encodePNG(p)
}

// SpeciesDiversity draws distinct species counts per country as bars.
func SpeciesDiversity(rows []analysis.CountryDiversity) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Species Diversity by Country"
	p.Y.Label.Text = "Distinct Species"
	p.Add(plotter.NewGrid())

	counts := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		counts[i] = float64(r.SpeciesCount)
		labels[i] = r.Country
	}
	bars, err := plotter.NewBarChart(counts, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("diversity bars: %w", err)
	}
	bars.Color = seriesPalette[2]
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return encodePNG(p)
}

// HabitatSuitability scatters the suitability index over years for one
// species, sized points marking the human activity level.
func HabitatSuitability(species string, points []analysis.SuitabilityPoint) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Habitat Suitability: %s", species)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Suitability Index"
	p.Add(plotter.NewGrid())

	var maxActivity float64
	for _, pt := range points {
		if pt.HumanActivity > maxActivity {
			maxActivity = pt.HumanActivity
		}
	}
	for _, pt := range points {
		scatter, err := plotter.NewScatter(plotter.XYs{{X: float64(pt.Year), Y: pt.Suitability}})
		if err != nil {
			return nil, fmt.Errorf("suitability point: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = seriesPalette[3]
		radius := vg.Points(3)
		if maxActivity > 0 {
			radius = vg.Points(3 + 6*pt.HumanActivity/maxActivity)
		}
		scatter.GlyphStyle.Radius = radius
		p.Add(scatter)
	}
	return encodePNG(p)
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
