package analysis

import (
	"sort"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// CountryDiversity counts the distinct species observed in one country.
type CountryDiversity struct {
	Country      string `json:"country"`
	SpeciesCount int    `json:"species_count"`
}

// SpeciesDiversity counts distinct species per country, sorted by count
// descending with country name breaking ties.
func SpeciesDiversity(fr *frame.Frame) ([]CountryDiversity, error) {
	if err := requireColumns(fr, domain.ColCountry, domain.ColSpecies); err != nil {
		return nil, err
	}

	seen := make(map[string]map[string]struct{})
	for i := 0; i < fr.NumRows(); i++ {
		country, _ := fr.Value(i, domain.ColCountry)
		species, _ := fr.Value(i, domain.ColSpecies)
		if country.IsNull() || species.IsNull() {
			continue
		}
		c := country.Render()
		if seen[c] == nil {
			seen[c] = make(map[string]struct{})
		}
		seen[c][species.Render()] = struct{}{}
	}

	out := make([]CountryDiversity, 0, len(seen))
	for country, species := range seen {
		out = append(out, CountryDiversity{Country: country, SpeciesCount: len(species)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SpeciesCount != out[j].SpeciesCount {
			return out[i].SpeciesCount > out[j].SpeciesCount
		}
		return out[i].Country < out[j].Country
	})
	return out, nil
}
