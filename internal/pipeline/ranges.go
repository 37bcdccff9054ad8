package pipeline

import (
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// RangeReport is the outcome of the year-range validation stage.
type RangeReport struct {
	Removed int `json:"removed"`
}

// ValidateYears drops rows whose year is null, non-numeric, or outside the
// inclusive [minYear, maxYear] range. A frame without a year column passes
// through untouched.
func ValidateYears(fr *frame.Frame, minYear, maxYear int) (*frame.Frame, RangeReport) {
	col, ok := fr.Col(domain.ColYear)
	if !ok {
		return fr, RangeReport{}
	}

	keep := make([]int, 0, fr.NumRows())
	for i := 0; i < fr.NumRows(); i++ {
		v := col.Value(i)
		if !v.IsNumeric() {
			continue
		}
		year := v.Float64()
		if year < float64(minYear) || year > float64(maxYear) {
			continue
		}
		keep = append(keep, i)
	}
	return fr.SelectRows(keep), RangeReport{Removed: fr.NumRows() - len(keep)}
}
