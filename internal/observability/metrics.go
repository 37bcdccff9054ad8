package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleaning pipeline and the dashboard.
type Metrics struct {
	RowsLoaded       prometheus.Counter
	RowsDropped      *prometheus.CounterVec // labels: reason={duplicate,year_range}
	ColumnsDropped   prometheus.Counter
	CellsImputed     *prometheus.CounterVec // labels: kind={numeric,mode}
	CoercionFailures prometheus.Counter
	PipelineRuns     prometheus.Counter
	PipelineDuration prometheus.Histogram

	// Dashboard metrics.
	HTTPRequests        *prometheus.CounterVec // labels: route, status
	ChartRenderDuration prometheus.Histogram
	ChartCache          *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.ColumnsDropped,
		m.CellsImputed,
		m.CoercionFailures,
		m.PipelineRuns,
		m.PipelineDuration,
		m.HTTPRequests,
		m.ChartRenderDuration,
		m.ChartCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "rows_loaded_total",
			Help:      "Total raw rows read from input files.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows removed during cleaning, by reason.",
		}, []string{"reason"}),
		ColumnsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "columns_dropped_total",
			Help:      "Columns dropped for exceeding the missing-ratio threshold.",
		}),
		CellsImputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "cells_imputed_total",
			Help:      "Missing cells filled during cleaning, by fill kind.",
		}, []string{"kind"}),
		CoercionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "coercion_failures_total",
			Help:      "Columns left unchanged because type coercion failed.",
		}),
		PipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "pipeline_runs_total",
			Help:      "Completed cleaning runs.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bird_etl",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a complete cleaning run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "http_requests_total",
			Help:      "Dashboard requests by route and status code.",
		}, []string{"route", "status"}),
		ChartRenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bird_etl",
			Name:      "chart_render_duration_seconds",
			Help:      "Time to render a chart PNG.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bird_etl",
			Name:      "chart_cache_total",
			Help:      "Chart cache lookups by result.",
		}, []string{"result"}),
	}
}
