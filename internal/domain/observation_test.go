package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestObservationKey(t *testing.T) {
	o := Observation{Country: "Denmark", Species: "Arctic Tern", Year: 2001}
	assert.Equal(t, "Denmark|Arctic Tern|2001", o.Key())
}

func TestObservationStampUsesClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	defer SetClock(nil)

	o := Observation{Country: "Denmark"}.Stamp()
	assert.Equal(t, at, o.ProcessedAt)
}

func TestSetClockNilResetsToRealTime(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Unix(0, 0)))
	SetClock(nil)

	assert.WithinDuration(t, time.Now(), Now(), time.Minute)
}
