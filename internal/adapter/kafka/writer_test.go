package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	pop := 12000.0
	o := domain.Observation{
		Country:     "Denmark",
		Species:     "Arctic Tern",
		Year:        2001,
		Population:  &pop,
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(o)
	require.NoError(t, err)

	assert.Equal(t, []byte("Denmark|Arctic Tern|2001"), msg.Key)
	assert.Contains(t, string(msg.Value), `"bird_species":"Arctic Tern"`)
	assert.Contains(t, string(msg.Value), `"population":12000`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "bird_species", msg.Headers[0].Key)
	assert.Equal(t, []byte("Arctic Tern"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessageOmitsAbsentColumns(t *testing.T) {
	o := domain.Observation{
		Country:     "Norway",
		Species:     "Osprey",
		Year:        1999,
		ProcessedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(o)
	require.NoError(t, err)

	assert.NotContains(t, string(msg.Value), "population")
	assert.NotContains(t, string(msg.Value), "shift_km")
}
