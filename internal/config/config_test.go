package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/Occurance_and_climatedata_of_birds.csv", cfg.InputPath)
	assert.Equal(t, "data/cleaned_bird_data.csv", cfg.OutputPath)
	assert.Equal(t, 0.5, cfg.MissingThreshold)
	assert.Equal(t, "median", cfg.FillMethod)
	assert.Equal(t, 1970, cfg.YearMin)
	assert.Equal(t, 2025, cfg.YearMax)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 128, cfg.ChartCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "cleaned-bird-observations", cfg.KafkaTopic)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INPUT_PATH", "raw.xlsx")
	t.Setenv("OUTPUT_PATH", "out/cleaned.csv")
	t.Setenv("MISSING_THRESHOLD", "0.25")
	t.Setenv("FILL_METHOD", "MEAN")
	t.Setenv("YEAR_MIN", "1990")
	t.Setenv("YEAR_MAX", "2020")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("KAFKA_TOPIC", "birds")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "raw.xlsx", cfg.InputPath)
	assert.Equal(t, 0.25, cfg.MissingThreshold)
	assert.Equal(t, "mean", cfg.FillMethod, "fill method is case-insensitive")
	assert.Equal(t, 1990, cfg.YearMin)
	assert.Equal(t, 2020, cfg.YearMax)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "birds", cfg.KafkaTopic)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"threshold above one", "MISSING_THRESHOLD", "1.5"},
		{"threshold negative", "MISSING_THRESHOLD", "-0.1"},
		{"unknown fill method", "FILL_METHOD", "mode"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"non-positive cache", "CHART_CACHE_SIZE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsInvertedYearRange(t *testing.T) {
	t.Setenv("YEAR_MIN", "2030")
	t.Setenv("YEAR_MAX", "2020")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresBrokersWhenKafkaEnabled(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	assert.Error(t, err)
}
