// Package http serves the dashboard: JSON summaries and rendered chart
// images over the cleaned dataset, plus the usual health, readiness and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/analysis"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/observability"
)

// Server exposes the dashboard HTTP API. The dataset is loaded after
// construction via SetDataset; until then the server reports not ready
// and data routes return 503.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	cache      *chartCache

	mu   sync.RWMutex
	data *dataset
}

// dataset bundles the cleaned frame with the summary tables derived from
// it, computed once per load so request handlers only read.
type dataset struct {
	frame     *frame.Frame
	trends    analysis.YearlyTrends
	shifts    []analysis.ShiftExtreme
	diversity []analysis.CountryDiversity
	countries []string
}

// NewServer creates the dashboard server with all routes registered.
// cacheSize bounds the number of rendered chart PNGs kept in memory.
func NewServer(addr string, cacheSize int, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
		cache:   newChartCache(cacheSize),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", s.instrument("index", s.handleIndex))
	mux.HandleFunc("GET /api/species", s.instrument("api_species", s.handleSpecies))
	mux.HandleFunc("GET /api/countries", s.instrument("api_countries", s.handleCountries))
	mux.HandleFunc("GET /api/yearly", s.instrument("api_yearly", s.handleYearly))
	mux.HandleFunc("GET /api/shift", s.instrument("api_shift", s.handleShift))
	mux.HandleFunc("GET /api/diversity", s.instrument("api_diversity", s.handleDiversity))
	mux.HandleFunc("GET /api/correlation", s.instrument("api_correlation", s.handleCorrelation))
	mux.HandleFunc("GET /charts/population", s.instrument("chart_population", s.handlePopulationChart))
	mux.HandleFunc("GET /charts/shift", s.instrument("chart_shift", s.handleShiftChart))
	mux.HandleFunc("GET /charts/diversity", s.instrument("chart_diversity", s.handleDiversityChart))
	mux.HandleFunc("GET /charts/suitability", s.instrument("chart_suitability", s.handleSuitabilityChart))

	return s
}

// SetDataset installs a cleaned frame and precomputes the summary tables.
// Any previously cached charts are invalidated.
func (s *Server) SetDataset(fr *frame.Frame) error {
	trends, err := analysis.ComputeYearlyTrends(fr)
	if err != nil {
		return err
	}
	shifts, err := analysis.ShiftExtremes(fr)
	if err != nil {
		return err
	}
	diversity, err := analysis.SpeciesDiversity(fr)
	if err != nil {
		return err
	}
	countries := make([]string, 0, len(diversity))
	for _, d := range diversity {
		countries = append(countries, d.Country)
	}
	sort.Strings(countries)

	s.mu.Lock()
	s.data = &dataset{
		frame:     fr,
		trends:    trends,
		shifts:    shifts,
		diversity: diversity,
		countries: countries,
	}
	s.mu.Unlock()
	s.cache.purge()

	s.logger.Info("dataset loaded",
		"rows", fr.NumRows(),
		"species", len(trends.Species),
		"countries", len(countries),
		"years", len(trends.Years))
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) currentDataset() (*dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.data != nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if _, ok := s.currentDataset(); !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "dataset not loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// instrument counts requests per route and final status code.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
