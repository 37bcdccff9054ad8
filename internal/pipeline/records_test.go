package pipeline

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

func TestToObservationsMapsColumns(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(at))
	defer domain.SetClock(nil)

	fr := buildFrame(t,
		[]string{"country", "bird_species", "year", "population", "shift_km"},
		[][]frame.Value{
			{frame.String("Denmark"), frame.String("Arctic Tern"), frame.Int(2001), frame.Int(1200), frame.Float(12.5)},
			{frame.String("Norway"), frame.String("Osprey"), frame.Int(2002), frame.Null(), frame.Float(7)},
		})

	obs := ToObservations(fr)
	require.Len(t, obs, 2)

	assert.Equal(t, "Denmark", obs[0].Country)
	assert.Equal(t, "Arctic Tern", obs[0].Species)
	assert.Equal(t, 2001, obs[0].Year)
	require.NotNil(t, obs[0].Population)
	assert.Equal(t, 1200.0, *obs[0].Population)
	require.NotNil(t, obs[0].ShiftKm)
	assert.Equal(t, 12.5, *obs[0].ShiftKm)
	assert.Nil(t, obs[0].Temperature, "absent column maps to nil")
	assert.Equal(t, at, obs[0].ProcessedAt)

	assert.Nil(t, obs[1].Population, "null cell maps to nil")
}

func TestToObservationsSkipsIncompleteRows(t *testing.T) {
	fr := buildFrame(t,
		[]string{"country", "bird_species", "year"},
		[][]frame.Value{
			{frame.Null(), frame.String("Osprey"), frame.Int(2002)},
			{frame.String("Norway"), frame.String("Osprey"), frame.Null()},
			{frame.String("Norway"), frame.String("Osprey"), frame.Int(2003)},
		})

	obs := ToObservations(fr)
	require.Len(t, obs, 1)
	assert.Equal(t, 2003, obs[0].Year)
}
