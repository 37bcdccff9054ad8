// Package pipeline cleans the raw bird occurrence dataset: sparse-column
// dropping and imputation, duplicate removal, best-effort type coercion,
// year-range validation, and text normalization, run in that fixed order.
// Stages are plain functions over frames so tests hit them directly; the
// Cleaner composes them with logging and metrics.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/observability"
)

// Options configure the cleaning stages.
type Options struct {
	MissingThreshold float64 // drop columns with missing ratio strictly above this
	FillMethod       string  // FillMedian or FillMean
	YearMin          int
	YearMax          int
}

// DefaultOptions mirror the documented defaults: 0.5 threshold, median
// fill, years 1970-2025 inclusive.
func DefaultOptions() Options {
	return Options{
		MissingThreshold: 0.5,
		FillMethod:       FillMedian,
		YearMin:          1970,
		YearMax:          2025,
	}
}

// CleanReport aggregates every stage report plus run bookkeeping.
type CleanReport struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	RowsIn    int           `json:"rows_in"`
	RowsOut   int           `json:"rows_out"`

	Missing MissingReport `json:"missing"`
	Dedupe  DedupeReport  `json:"dedupe"`
	Coerce  CoerceReport  `json:"coerce"`
	Range   RangeReport   `json:"range"`
	Text    TextReport    `json:"text"`
}

// Cleaner runs the full cleaning pipeline.
type Cleaner struct {
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCleaner creates a Cleaner.
func NewCleaner(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Cleaner {
	return &Cleaner{opts: opts, logger: logger, metrics: metrics}
}

// Run cleans a loaded frame. The input frame is never mutated; any stage
// error aborts the run.
func (c *Cleaner) Run(fr *frame.Frame) (*frame.Frame, CleanReport, error) {
	report := CleanReport{StartedAt: domain.Now(), RowsIn: fr.NumRows()}
	start := time.Now()

	c.metrics.RowsLoaded.Add(float64(fr.NumRows()))

	out, missing, err := HandleMissing(fr, c.opts.MissingThreshold, c.opts.FillMethod)
	if err != nil {
		return nil, report, fmt.Errorf("missing-value stage: %w", err)
	}
	report.Missing = missing
	c.metrics.ColumnsDropped.Add(float64(len(missing.DroppedColumns)))
	for _, fill := range missing.Filled {
		kind := "numeric"
		if fill.Method == "mode" {
			kind = "mode"
		}
		c.metrics.CellsImputed.WithLabelValues(kind).Add(float64(fill.Cells))
	}
	c.logger.Info("missing values handled",
		"dropped_columns", missing.DroppedColumns,
		"filled_columns", len(missing.Filled),
		"no_mode", missing.NoMode,
	)

	out, dedupe := Dedupe(out)
	report.Dedupe = dedupe
	c.metrics.RowsDropped.WithLabelValues("duplicate").Add(float64(dedupe.Duplicates))
	c.logger.Info("duplicates removed", "count", dedupe.Duplicates)

	out, coerce := CoerceTypes(out)
	report.Coerce = coerce
	for _, o := range coerce.Outcomes {
		switch o.Outcome {
		case CoerceFailed:
			c.metrics.CoercionFailures.Inc()
			c.logger.Warn("type coercion failed, column left unchanged",
				"column", o.Column, "target", o.Target, "bad_value", o.BadValue)
		case CoerceAbsent:
			c.logger.Warn("coercion target column absent", "column", o.Column)
		}
	}

	out, yearRange := ValidateYears(out, c.opts.YearMin, c.opts.YearMax)
	report.Range = yearRange
	c.metrics.RowsDropped.WithLabelValues("year_range").Add(float64(yearRange.Removed))
	c.logger.Info("year range validated",
		"min", c.opts.YearMin, "max", c.opts.YearMax, "removed", yearRange.Removed)

	out, text := NormalizeText(out)
	report.Text = text

	report.RowsOut = out.NumRows()
	report.Duration = time.Since(start)
	c.metrics.PipelineRuns.Inc()
	c.metrics.PipelineDuration.Observe(report.Duration.Seconds())
	c.logger.Info("cleaning complete",
		"rows_in", report.RowsIn, "rows_out", report.RowsOut, "duration", report.Duration)

	return out, report, nil
}

// RunFile loads inputPath, cleans it, and persists the result to
// outputPath, creating the destination directory when absent.
func (c *Cleaner) RunFile(inputPath, outputPath string) (*frame.Frame, CleanReport, error) {
	fr, err := frame.ReadFile(inputPath)
	if err != nil {
		return nil, CleanReport{}, err
	}

	profile := fr.Profile()
	c.logger.Info("dataset loaded", "path", inputPath, "rows", profile.Rows, "cols", profile.Cols)
	for _, col := range profile.Columns {
		c.logger.Debug("column profile",
			"column", col.Name, "dtype", col.Kind,
			"missing", col.Missing, "missing_pct", col.MissingPct, "unique", col.Unique)
	}

	cleaned, report, err := c.Run(fr)
	if err != nil {
		return nil, report, err
	}

	if err := writeFrame(cleaned, outputPath); err != nil {
		return nil, report, err
	}
	c.logger.Info("cleaned dataset written", "path", outputPath, "rows", cleaned.NumRows())
	return cleaned, report, nil
}

func writeFrame(fr *frame.Frame, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := fr.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
