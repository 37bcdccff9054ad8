package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

func buildFrame(t *testing.T, names []string, rows [][]frame.Value) *frame.Frame {
	t.Helper()
	fr, err := frame.New(names...)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, fr.AppendRow(row...))
	}
	return fr
}

func TestHandleMissingDropsColumnOverThreshold(t *testing.T) {
	fr := buildFrame(t, []string{"population", "notes"}, [][]frame.Value{
		{frame.Int(100), frame.Null()},
		{frame.Int(200), frame.Null()},
		{frame.Int(300), frame.String("ok")},
		{frame.Int(400), frame.Null()},
	})

	out, report, err := HandleMissing(fr, 0.5, FillMedian)
	require.NoError(t, err)

	assert.Equal(t, []string{"notes"}, report.DroppedColumns)
	assert.False(t, out.HasColumn("notes"))
	assert.True(t, out.HasColumn("population"))
}

func TestHandleMissingKeepsColumnAtExactThreshold(t *testing.T) {
	// 2 of 4 missing is exactly 0.5; the drop rule is strictly greater.
	fr := buildFrame(t, []string{"population"}, [][]frame.Value{
		{frame.Int(100)},
		{frame.Null()},
		{frame.Int(300)},
		{frame.Null()},
	})

	out, report, err := HandleMissing(fr, 0.5, FillMedian)
	require.NoError(t, err)

	assert.Empty(t, report.DroppedColumns)
	assert.True(t, out.HasColumn("population"))
}

func TestHandleMissingImputesNumericMedian(t *testing.T) {
	fr := buildFrame(t, []string{"population"}, [][]frame.Value{
		{frame.Int(100)},
		{frame.Null()},
		{frame.Int(300)},
		{frame.Int(200)},
	})

	out, report, err := HandleMissing(fr, 0.9, FillMedian)
	require.NoError(t, err)

	v, ok := out.Value(1, "population")
	require.True(t, ok)
	assert.Equal(t, 200.0, v.Float64())
	// The fill is inserted as a float, like a numeric column becoming
	// fractional once a median lands in it.
	assert.Equal(t, frame.KindFloat, v.Kind())

	info := report.Filled["population"]
	assert.Equal(t, FillMedian, info.Method)
	assert.Equal(t, 1, info.Cells)
	assert.Equal(t, "200", info.Value)
}

func TestHandleMissingImputesNumericMean(t *testing.T) {
	fr := buildFrame(t, []string{"temperature"}, [][]frame.Value{
		{frame.Float(10)},
		{frame.Null()},
		{frame.Float(20)},
	})

	out, report, err := HandleMissing(fr, 0.9, FillMean)
	require.NoError(t, err)

	v, ok := out.Value(1, "temperature")
	require.True(t, ok)
	assert.InDelta(t, 15.0, v.Float64(), 1e-9)
	assert.Equal(t, FillMean, report.Filled["temperature"].Method)
}

func TestHandleMissingImputesTextMode(t *testing.T) {
	fr := buildFrame(t, []string{"country"}, [][]frame.Value{
		{frame.String("Denmark")},
		{frame.String("Norway")},
		{frame.String("Denmark")},
		{frame.Null()},
	})

	out, report, err := HandleMissing(fr, 0.9, FillMedian)
	require.NoError(t, err)

	v, ok := out.Value(3, "country")
	require.True(t, ok)
	assert.Equal(t, "Denmark", v.Str())
	assert.Equal(t, "mode", report.Filled["country"].Method)
}

func TestHandleMissingModeTieTakesSmallestValue(t *testing.T) {
	fr := buildFrame(t, []string{"country"}, [][]frame.Value{
		{frame.String("Norway")},
		{frame.String("Denmark")},
		{frame.Null()},
	})

	out, _, err := HandleMissing(fr, 0.9, FillMedian)
	require.NoError(t, err)

	v, ok := out.Value(2, "country")
	require.True(t, ok)
	assert.Equal(t, "Denmark", v.Str())
}

func TestHandleMissingAllNullColumnHasNoMode(t *testing.T) {
	fr := buildFrame(t, []string{"country", "year"}, [][]frame.Value{
		{frame.Null(), frame.Int(2000)},
		{frame.Null(), frame.Int(2001)},
	})

	out, report, err := HandleMissing(fr, 1.0, FillMedian)
	require.NoError(t, err)

	assert.Equal(t, []string{"country"}, report.NoMode)
	v, ok := out.Value(0, "country")
	require.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestHandleMissingRejectsUnknownMethod(t *testing.T) {
	fr := buildFrame(t, []string{"population"}, [][]frame.Value{{frame.Int(1)}})

	_, _, err := HandleMissing(fr, 0.5, "mode")
	assert.Error(t, err)
}

func TestHandleMissingDoesNotMutateInput(t *testing.T) {
	fr := buildFrame(t, []string{"population"}, [][]frame.Value{
		{frame.Int(100)},
		{frame.Null()},
	})

	_, _, err := HandleMissing(fr, 0.9, FillMedian)
	require.NoError(t, err)

	v, ok := fr.Value(1, "population")
	require.True(t, ok)
	assert.True(t, v.IsNull())
}
