package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// EnvCorrelation holds Pearson correlations between one species' yearly
// population and the yearly environment series. A coefficient is NaN when
// fewer than two complete year pairs exist.
type EnvCorrelation struct {
	Species       string  `json:"bird_species"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	Traffic       float64 `json:"traffic"`
}

// CorrelateEnvironment correlates the species' population series against
// temperature, precipitation and traffic. Years where either side of a
// pair is NaN are dropped from that pair only.
func (t YearlyTrends) CorrelateEnvironment(species string) (EnvCorrelation, error) {
	pop, ok := t.PopulationSeries(species)
	if !ok {
		return EnvCorrelation{}, fmt.Errorf("unknown species %q", species)
	}
	return EnvCorrelation{
		Species:       species,
		Temperature:   pairwisePearson(pop, t.Temperature),
		Precipitation: pairwisePearson(pop, t.Precipitation),
		Traffic:       pairwisePearson(pop, t.Traffic),
	}, nil
}

func pairwisePearson(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 || constant(px) || constant(py) {
		return math.NaN()
	}
	r, err := stats.Pearson(px, py)
	if err != nil {
		return math.NaN()
	}
	return r
}

// constant reports whether every element equals the first. A coefficient
// over a zero-variance series is undefined.
func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
