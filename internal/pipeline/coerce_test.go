package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

func outcomeFor(t *testing.T, report CoerceReport, column string) CoercionOutcome {
	t.Helper()
	for _, o := range report.Outcomes {
		if o.Column == column {
			return o
		}
	}
	t.Fatalf("no outcome for column %q", column)
	return CoercionOutcome{}
}

func TestCoerceTypesConvertsStringsToTargets(t *testing.T) {
	fr := buildFrame(t, []string{"year", "temperature"}, [][]frame.Value{
		{frame.String("2001"), frame.String("8.5")},
		{frame.String(" 2002 "), frame.Int(9)},
	})

	out, report := CoerceTypes(fr)

	assert.Equal(t, CoerceConverted, outcomeFor(t, report, "year").Outcome)
	assert.Equal(t, CoerceConverted, outcomeFor(t, report, "temperature").Outcome)

	v, _ := out.Value(0, "year")
	assert.Equal(t, frame.KindInt, v.Kind())
	assert.Equal(t, int64(2001), v.Int64())

	v, _ = out.Value(1, "temperature")
	assert.Equal(t, frame.KindFloat, v.Kind())
	assert.Equal(t, 9.0, v.Float64())
}

func TestCoerceTypesIntegralFloatBecomesInt(t *testing.T) {
	fr := buildFrame(t, []string{"population"}, [][]frame.Value{
		{frame.Float(1200.0)},
	})

	out, report := CoerceTypes(fr)

	assert.Equal(t, CoerceConverted, outcomeFor(t, report, "population").Outcome)
	v, _ := out.Value(0, "population")
	assert.Equal(t, frame.KindInt, v.Kind())
	assert.Equal(t, int64(1200), v.Int64())
}

func TestCoerceTypesFractionalFloatFailsIntTarget(t *testing.T) {
	fr := buildFrame(t, []string{"year"}, [][]frame.Value{
		{frame.Int(2000)},
		{frame.Float(2001.5)},
	})

	out, report := CoerceTypes(fr)

	o := outcomeFor(t, report, "year")
	assert.Equal(t, CoerceFailed, o.Outcome)
	assert.Equal(t, "2001.5", o.BadValue)
	assert.Equal(t, []string{"year"}, report.Failed())

	// A failed column is left entirely unchanged.
	v, _ := out.Value(1, "year")
	assert.Equal(t, frame.KindFloat, v.Kind())
}

func TestCoerceTypesUnparseableStringFails(t *testing.T) {
	fr := buildFrame(t, []string{"latitude"}, [][]frame.Value{
		{frame.String("55.67")},
		{frame.String("north")},
	})

	out, report := CoerceTypes(fr)

	o := outcomeFor(t, report, "latitude")
	assert.Equal(t, CoerceFailed, o.Outcome)
	assert.Equal(t, "north", o.BadValue)

	v, _ := out.Value(0, "latitude")
	assert.Equal(t, frame.KindString, v.Kind())
}

func TestCoerceTypesNullsPassThrough(t *testing.T) {
	fr := buildFrame(t, []string{"shift_km"}, [][]frame.Value{
		{frame.Null()},
		{frame.String("12.5")},
	})

	out, report := CoerceTypes(fr)

	assert.Equal(t, CoerceConverted, outcomeFor(t, report, "shift_km").Outcome)
	v, _ := out.Value(0, "shift_km")
	assert.True(t, v.IsNull())
	v, _ = out.Value(1, "shift_km")
	assert.Equal(t, 12.5, v.Float64())
}

func TestCoerceTypesReportsAbsentColumns(t *testing.T) {
	fr := buildFrame(t, []string{"country"}, [][]frame.Value{
		{frame.String("Denmark")},
	})

	_, report := CoerceTypes(fr)

	require.Len(t, report.Outcomes, len(coercionOrder))
	for _, o := range report.Outcomes {
		assert.Equal(t, CoerceAbsent, o.Outcome, o.Column)
	}
}

func TestCoerceTypesDoesNotMutateInput(t *testing.T) {
	fr := buildFrame(t, []string{"year"}, [][]frame.Value{
		{frame.String("2001")},
	})

	_, _ = CoerceTypes(fr)

	v, _ := fr.Value(0, "year")
	assert.Equal(t, frame.KindString, v.Kind())
}
