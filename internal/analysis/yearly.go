// Package analysis derives the dashboard's summary tables from the
// cleaned dataset. Every function is a pure function of its input frame:
// nothing here mutates shared state, so the dashboard can call these from
// concurrent request handlers.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// YearlyTrends is the wide per-year summary behind research question 1:
// one population series per species (summed per year) joined with the
// yearly climate means. Population holds math.NaN for years a species has
// no observations in, mirroring the holes a pivot leaves.
type YearlyTrends struct {
	Years         []int
	Species       []string // sorted
	Population    map[string][]float64
	Temperature   []float64
	Precipitation []float64
	Traffic       []float64
}

var climateColumns = []string{domain.ColTemperature, domain.ColPrecipitation, domain.ColTraffic}

// ComputeYearlyTrends groups population by (species, year), pivots species
// into columns, averages the climate columns per year, and inner-joins the
// two on year: only years with both population and climate data survive.
func ComputeYearlyTrends(fr *frame.Frame) (YearlyTrends, error) {
	if err := requireColumns(fr,
		domain.ColSpecies, domain.ColYear, domain.ColPopulation,
		domain.ColTemperature, domain.ColPrecipitation, domain.ColTraffic,
	); err != nil {
		return YearlyTrends{}, err
	}

	type speciesYear struct {
		species string
		year    int
	}
	popSums := make(map[speciesYear]float64)
	speciesSet := make(map[string]struct{})
	popYears := make(map[int]struct{})

	climSums := make(map[int][3]float64)
	climCounts := make(map[int][3]int)

	for i := 0; i < fr.NumRows(); i++ {
		yearVal, _ := fr.Value(i, domain.ColYear)
		if !yearVal.IsNumeric() {
			continue
		}
		year := int(yearVal.Float64())

		spVal, _ := fr.Value(i, domain.ColSpecies)
		popVal, _ := fr.Value(i, domain.ColPopulation)
		if !spVal.IsNull() && popVal.IsNumeric() {
			sp := spVal.Render()
			popSums[speciesYear{sp, year}] += popVal.Float64()
			speciesSet[sp] = struct{}{}
			popYears[year] = struct{}{}
		}

		sums := climSums[year]
		counts := climCounts[year]
		for j, name := range climateColumns {
			v, _ := fr.Value(i, name)
			if v.IsNumeric() {
				sums[j] += v.Float64()
				counts[j]++
			}
		}
		climSums[year] = sums
		climCounts[year] = counts
	}

	// Inner join: a year needs at least one population observation and at
	// least one climate reading.
	var years []int
	for year := range popYears {
		counts := climCounts[year]
		if counts[0]+counts[1]+counts[2] > 0 {
			years = append(years, year)
		}
	}
	sort.Ints(years)

	species := make([]string, 0, len(speciesSet))
	for sp := range speciesSet {
		species = append(species, sp)
	}
	sort.Strings(species)

	t := YearlyTrends{
		Years:         years,
		Species:       species,
		Population:    make(map[string][]float64, len(species)),
		Temperature:   make([]float64, len(years)),
		Precipitation: make([]float64, len(years)),
		Traffic:       make([]float64, len(years)),
	}
	for _, sp := range species {
		t.Population[sp] = make([]float64, len(years))
	}

	for i, year := range years {
		for _, sp := range species {
			if sum, ok := popSums[speciesYear{sp, year}]; ok {
				t.Population[sp][i] = sum
			} else {
				t.Population[sp][i] = math.NaN()
			}
		}
		sums, counts := climSums[year], climCounts[year]
		t.Temperature[i] = meanOrNaN(sums[0], counts[0])
		t.Precipitation[i] = meanOrNaN(sums[1], counts[1])
		t.Traffic[i] = meanOrNaN(sums[2], counts[2])
	}
	return t, nil
}

// ToFrame renders the trends as a frame with columns
// year, <species...>, temperature, precipitation, traffic, the shape
// the dashboard API serializes directly.
func (t YearlyTrends) ToFrame() (*frame.Frame, error) {
	names := append([]string{domain.ColYear}, t.Species...)
	names = append(names, climateColumns...)
	fr, err := frame.New(names...)
	if err != nil {
		return nil, err
	}
	for i, year := range t.Years {
		cells := make([]frame.Value, 0, len(names))
		cells = append(cells, frame.Int(int64(year)))
		for _, sp := range t.Species {
			cells = append(cells, floatOrNull(t.Population[sp][i]))
		}
		cells = append(cells,
			floatOrNull(t.Temperature[i]),
			floatOrNull(t.Precipitation[i]),
			floatOrNull(t.Traffic[i]),
		)
		if err := fr.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return fr, nil
}

// PopulationSeries returns the species' yearly summed population aligned
// to Years, or false when the species is unknown.
func (t YearlyTrends) PopulationSeries(species string) ([]float64, bool) {
	s, ok := t.Population[species]
	return s, ok
}

func meanOrNaN(sum float64, count int) float64 {
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

func floatOrNull(f float64) frame.Value {
	if math.IsNaN(f) {
		return frame.Null()
	}
	return frame.Float(f)
}

func requireColumns(fr *frame.Frame, names ...string) error {
	for _, name := range names {
		if !fr.HasColumn(name) {
			return fmt.Errorf("required column %q is missing", name)
		}
	}
	return nil
}
