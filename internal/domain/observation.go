package domain

import (
	"fmt"
	"time"
)

// Observation is one cleaned dataset row in record form, used when
// publishing cleaned data to Kafka. Pointer fields are null when the
// source column was absent from the input file.
type Observation struct {
	Country       string   `json:"country"`
	Species       string   `json:"bird_species"`
	Year          int      `json:"year"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Population    *float64 `json:"population,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
	ShiftKm       *float64 `json:"shift_km,omitempty"`
	Traffic       *float64 `json:"traffic,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Key identifies the observation's group for Kafka partitioning. Rows from
// the same country/species/year land on the same partition.
func (o Observation) Key() string {
	return fmt.Sprintf("%s|%s|%d", o.Country, o.Species, o.Year)
}

// Stamp sets ProcessedAt from the package clock.
func (o Observation) Stamp() Observation {
	o.ProcessedAt = clock.Now()
	return o
}
