package analysis

import (
	"fmt"
	"sort"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// SuitabilityPoint scores one observation of a species. The index rewards
// temperature and precipitation percentile ranks and penalises the human
// activity rank, so higher means more suitable habitat.
type SuitabilityPoint struct {
	Year          int     `json:"year"`
	Country       string  `json:"country"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	HumanActivity float64 `json:"human_activity_index"`
	Suitability   float64 `json:"suitability_index"`
}

// HabitatSuitability computes the suitability index for every complete
// observation of one species. Human activity is the mean of population
// and traffic; percentile ranks are taken within the species' own rows,
// averaging ties. Rows missing any required value are skipped.
func HabitatSuitability(fr *frame.Frame, species string) ([]SuitabilityPoint, error) {
	if err := requireColumns(fr,
		domain.ColSpecies, domain.ColCountry, domain.ColYear,
		domain.ColTemperature, domain.ColPrecipitation,
		domain.ColPopulation, domain.ColTraffic,
	); err != nil {
		return nil, err
	}

	var points []SuitabilityPoint
	for i := 0; i < fr.NumRows(); i++ {
		sp, _ := fr.Value(i, domain.ColSpecies)
		if sp.IsNull() || sp.Render() != species {
			continue
		}
		country, _ := fr.Value(i, domain.ColCountry)
		year, _ := fr.Value(i, domain.ColYear)
		temp, _ := fr.Value(i, domain.ColTemperature)
		precip, _ := fr.Value(i, domain.ColPrecipitation)
		pop, _ := fr.Value(i, domain.ColPopulation)
		traffic, _ := fr.Value(i, domain.ColTraffic)
		if country.IsNull() || !year.IsNumeric() || !temp.IsNumeric() ||
			!precip.IsNumeric() || !pop.IsNumeric() || !traffic.IsNumeric() {
			continue
		}
		points = append(points, SuitabilityPoint{
			Year:          int(year.Float64()),
			Country:       country.Render(),
			Temperature:   temp.Float64(),
			Precipitation: precip.Float64(),
			HumanActivity: (pop.Float64() + traffic.Float64()) / 2,
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no complete observations for species %q", species)
	}

	temps := make([]float64, len(points))
	precips := make([]float64, len(points))
	activity := make([]float64, len(points))
	for i, p := range points {
		temps[i] = p.Temperature
		precips[i] = p.Precipitation
		activity[i] = p.HumanActivity
	}
	tRank := percentileRanks(temps)
	pRank := percentileRanks(precips)
	hRank := percentileRanks(activity)
	for i := range points {
		points[i].Suitability = 0.4*tRank[i] + 0.4*pRank[i] - 0.2*hRank[i]
	}
	return points, nil
}

// percentileRanks maps each value to its percentile rank in [0, 1], with
// tied values sharing the mean of the ranks they span.
func percentileRanks(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// 1-based ranks i+1..j averaged across the tie run.
		mean := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = mean / float64(n)
		}
		i = j
	}
	return ranks
}
