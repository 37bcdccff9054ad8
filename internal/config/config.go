package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	InputPath  string
	OutputPath string

	MissingThreshold float64
	FillMethod       string
	YearMin          int
	YearMax          int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	ChartCacheSize  int

	// Optional publish of cleaned observations (KAFKA_ENABLED).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("INPUT_PATH", "data/Occurance_and_climatedata_of_birds.csv")
	v.SetDefault("OUTPUT_PATH", "data/cleaned_bird_data.csv")
	v.SetDefault("MISSING_THRESHOLD", 0.5)
	v.SetDefault("FILL_METHOD", "median")
	v.SetDefault("YEAR_MIN", 1970)
	v.SetDefault("YEAR_MAX", 2025)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CHART_CACHE_SIZE", 128)
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "cleaned-bird-observations")

	shutdown, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil || shutdown <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	cfg := &Config{
		InputPath:        v.GetString("INPUT_PATH"),
		OutputPath:       v.GetString("OUTPUT_PATH"),
		MissingThreshold: v.GetFloat64("MISSING_THRESHOLD"),
		FillMethod:       strings.ToLower(v.GetString("FILL_METHOD")),
		YearMin:          v.GetInt("YEAR_MIN"),
		YearMax:          v.GetInt("YEAR_MAX"),
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		ShutdownTimeout:  shutdown,
		ChartCacheSize:   v.GetInt("CHART_CACHE_SIZE"),
		KafkaEnabled:     v.GetBool("KAFKA_ENABLED"),
		KafkaBrokers:     parseBrokers(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:       v.GetString("KAFKA_TOPIC"),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.MissingThreshold < 0 || cfg.MissingThreshold > 1 {
		return nil, fmt.Errorf("MISSING_THRESHOLD must be in [0,1], got %v", cfg.MissingThreshold)
	}
	if cfg.FillMethod != "median" && cfg.FillMethod != "mean" {
		return nil, fmt.Errorf("FILL_METHOD must be median or mean, got %q", cfg.FillMethod)
	}
	if cfg.YearMin > cfg.YearMax {
		return nil, fmt.Errorf("YEAR_MIN %d exceeds YEAR_MAX %d", cfg.YearMin, cfg.YearMax)
	}
	if cfg.ChartCacheSize <= 0 {
		return nil, errors.New("CHART_CACHE_SIZE must be positive")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
