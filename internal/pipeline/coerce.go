package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

// Coercion outcome states.
const (
	CoerceConverted = "converted"
	CoerceFailed    = "failed"
	CoerceAbsent    = "absent"
)

// CoercionOutcome is the explicit per-column result of the type coercion
// stage, so callers can react to failures instead of scraping logs.
type CoercionOutcome struct {
	Column   string `json:"column"`
	Target   string `json:"target"`
	Outcome  string `json:"outcome"`
	BadValue string `json:"bad_value,omitempty"` // first unconvertible cell, when failed
}

// CoerceReport collects one outcome per mapped column, in a fixed order.
type CoerceReport struct {
	Outcomes []CoercionOutcome `json:"outcomes"`
}

// Failed returns the columns whose coercion failed.
func (r CoerceReport) Failed() []string {
	var cols []string
	for _, o := range r.Outcomes {
		if o.Outcome == CoerceFailed {
			cols = append(cols, o.Column)
		}
	}
	return cols
}

// coercionOrder fixes the report order; map iteration over
// domain.CoercionTargets would shuffle it between runs.
var coercionOrder = []string{
	domain.ColYear,
	domain.ColPopulation,
	domain.ColLatitude,
	domain.ColLongitude,
	domain.ColTemperature,
	domain.ColPrecipitation,
	domain.ColShiftKm,
}

// CoerceTypes casts the mapped columns to their target numeric kinds, best
// effort per column: a column with any unconvertible non-null cell is left
// entirely unchanged and reported failed with the offending value. Nulls
// pass through, keeping the columns nullable. The input frame is never
// mutated.
func CoerceTypes(fr *frame.Frame) (*frame.Frame, CoerceReport) {
	out := fr.Clone()
	report := CoerceReport{Outcomes: make([]CoercionOutcome, 0, len(coercionOrder))}

	for _, name := range coercionOrder {
		target := domain.CoercionTargets[name]
		outcome := CoercionOutcome{Column: name, Target: target.String()}

		col, ok := out.Col(name)
		if !ok {
			outcome.Outcome = CoerceAbsent
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		converted, bad := coerceColumn(col, target)
		if bad != "" {
			outcome.Outcome = CoerceFailed
			outcome.BadValue = bad
		} else {
			for i, v := range converted {
				col.Set(i, v)
			}
			outcome.Outcome = CoerceConverted
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return out, report
}

// coerceColumn converts every cell or none: it returns the converted cells
// and an empty bad value on success, or the first unconvertible cell text
// on failure.
func coerceColumn(col *frame.Column, target domain.NumericKind) ([]frame.Value, string) {
	converted := make([]frame.Value, col.Len())
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsNull() {
			converted[i] = v
			continue
		}
		cv, ok := coerceValue(v, target)
		if !ok {
			return nil, v.Render()
		}
		converted[i] = cv
	}
	return converted, ""
}

func coerceValue(v frame.Value, target domain.NumericKind) (frame.Value, bool) {
	switch target {
	case domain.NumericInt:
		return coerceToInt(v)
	default:
		return coerceToFloat(v)
	}
}

func coerceToInt(v frame.Value) (frame.Value, bool) {
	switch v.Kind() {
	case frame.KindInt:
		return v, true
	case frame.KindFloat:
		f := v.Float64()
		if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
			return frame.Value{}, false
		}
		return frame.Int(int64(f)), true
	default:
		s := strings.TrimSpace(v.Str())
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return frame.Value{}, false
		}
		return frame.Int(i), true
	}
}

func coerceToFloat(v frame.Value) (frame.Value, bool) {
	switch v.Kind() {
	case frame.KindInt, frame.KindFloat:
		return frame.Float(v.Float64()), true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return frame.Value{}, false
		}
		return frame.Float(f), true
	}
}
