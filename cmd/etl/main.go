// Command etl cleans a raw bird observation dataset: it reads the input
// file, runs the cleaning pipeline, writes the cleaned CSV, and
// optionally publishes the cleaned rows to Kafka.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/IntroToProgrammingSDU/bird-climate-etl/internal/adapter/kafka"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/config"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/observability"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleaner := pipeline.NewCleaner(pipeline.Options{
		MissingThreshold: cfg.MissingThreshold,
		FillMethod:       cfg.FillMethod,
		YearMin:          cfg.YearMin,
		YearMax:          cfg.YearMax,
	}, logger, metrics)

	cleaned, report, err := cleaner.RunFile(cfg.InputPath, cfg.OutputPath)
	if err != nil {
		logger.Error("cleaning failed", "error", err)
		os.Exit(1)
	}
	logger.Info("cleaning complete",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"duration", report.Duration,
		"output", cfg.OutputPath)

	// Publishing is feature-flagged via KAFKA_ENABLED.
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		observations := pipeline.ToObservations(cleaned)
		if err := writer.PublishBatch(ctx, observations); err != nil {
			logger.Error("publish failed", "error", err)
			writer.Close() //nolint:errcheck
			os.Exit(1)
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	} else {
		logger.Info("kafka publishing disabled")
	}
}
