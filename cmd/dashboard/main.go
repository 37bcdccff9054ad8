// Command dashboard serves the bird population and climate dashboard
// over a cleaned dataset produced by the etl command.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/IntroToProgrammingSDU/bird-climate-etl/internal/adapter/http"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/config"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.ChartCacheSize, metrics, logger)

	// The dashboard serves the cleaned output of the etl command.
	fr, err := frame.ReadFile(cfg.OutputPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.OutputPath, "error", err)
		os.Exit(1)
	}
	if err := srv.SetDataset(fr); err != nil {
		logger.Error("failed to prepare dataset", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
