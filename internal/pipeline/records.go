package pipeline

import (
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// ToObservations converts a cleaned frame into observation records ready
// for publishing. Rows without a country, species and year are skipped;
// optional numeric columns map to nil when absent or null.
func ToObservations(fr *frame.Frame) []domain.Observation {
	out := make([]domain.Observation, 0, fr.NumRows())
	for i := 0; i < fr.NumRows(); i++ {
		country, _ := fr.Value(i, domain.ColCountry)
		species, _ := fr.Value(i, domain.ColSpecies)
		year, _ := fr.Value(i, domain.ColYear)
		if country.IsNull() || species.IsNull() || !year.IsNumeric() {
			continue
		}
		o := domain.Observation{
			Country:       country.Render(),
			Species:       species.Render(),
			Year:          int(year.Float64()),
			Latitude:      optionalFloat(fr, i, domain.ColLatitude),
			Longitude:     optionalFloat(fr, i, domain.ColLongitude),
			Population:    optionalFloat(fr, i, domain.ColPopulation),
			Temperature:   optionalFloat(fr, i, domain.ColTemperature),
			Precipitation: optionalFloat(fr, i, domain.ColPrecipitation),
			ShiftKm:       optionalFloat(fr, i, domain.ColShiftKm),
			Traffic:       optionalFloat(fr, i, domain.ColTraffic),
		}
		out = append(out, o.Stamp())
	}
	return out
}

func optionalFloat(fr *frame.Frame, row int, col string) *float64 {
	if !fr.HasColumn(col) {
		return nil
	}
	v, _ := fr.Value(row, col)
	if !v.IsNumeric() {
		return nil
	}
	f := v.Float64()
	return &f
}
