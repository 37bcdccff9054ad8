package analysis

import (
	"sort"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// ShiftExtreme is the row with the largest migration shift for one
// (country, species, year) group, carrying the population and temperature
// observed on that same row.
type ShiftExtreme struct {
	Country     string  `json:"country"`
	Species     string  `json:"bird_species"`
	Year        int     `json:"year"`
	MaxShiftKm  float64 `json:"max_shift_km"`
	Population  float64 `json:"population_at_max_shift"`
	Temperature float64 `json:"temperature_at_max_shift"`
}

// ShiftExtremes finds, per (country, species, year), the observation with
// the maximum shift_km in a single pass over the frame. Rows with a null
// shift never win a group; ties keep the earliest row. Results are sorted
// by year, then country, then species.
func ShiftExtremes(fr *frame.Frame) ([]ShiftExtreme, error) {
	if err := requireColumns(fr,
		domain.ColCountry, domain.ColSpecies, domain.ColYear,
		domain.ColShiftKm, domain.ColPopulation, domain.ColTemperature,
	); err != nil {
		return nil, err
	}

	type groupKey struct {
		country string
		species string
		year    int
	}
	best := make(map[groupKey]ShiftExtreme)
	order := make([]groupKey, 0)

	for i := 0; i < fr.NumRows(); i++ {
		country, _ := fr.Value(i, domain.ColCountry)
		species, _ := fr.Value(i, domain.ColSpecies)
		year, _ := fr.Value(i, domain.ColYear)
		shift, _ := fr.Value(i, domain.ColShiftKm)
		if country.IsNull() || species.IsNull() || !year.IsNumeric() || !shift.IsNumeric() {
			continue
		}
		key := groupKey{country.Render(), species.Render(), int(year.Float64())}
		cur, seen := best[key]
		if seen && shift.Float64() <= cur.MaxShiftKm {
			continue
		}
		pop, _ := fr.Value(i, domain.ColPopulation)
		temp, _ := fr.Value(i, domain.ColTemperature)
		best[key] = ShiftExtreme{
			Country:     key.country,
			Species:     key.species,
			Year:        key.year,
			MaxShiftKm:  shift.Float64(),
			Population:  pop.Float64(),
			Temperature: temp.Float64(),
		}
		if !seen {
			order = append(order, key)
		}
	}

	out := make([]ShiftExtreme, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Species < out[j].Species
	})
	return out, nil
}
