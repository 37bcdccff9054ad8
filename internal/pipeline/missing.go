package pipeline

import (
	"fmt"
	"sort"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"github.com/montanaflynn/stats"
)

// Fill methods for numeric imputation.
const (
	FillMedian = "median"
	FillMean   = "mean"
)

// FillInfo records how one column's gaps were imputed.
type FillInfo struct {
	Method string `json:"method"` // "median", "mean", or "mode"
	Cells  int    `json:"cells"`  // number of cells filled
	Value  string `json:"value"`  // rendered fill value
}

// MissingReport is the outcome of the missing-value stage.
type MissingReport struct {
	DroppedColumns []string            `json:"dropped_columns,omitempty"`
	Filled         map[string]FillInfo `json:"filled,omitempty"`
	NoMode         []string            `json:"no_mode,omitempty"`
}

// HandleMissing drops columns whose missing ratio strictly exceeds
// threshold, then imputes remaining gaps: numeric columns with the median
// or mean of their non-missing values, other columns with their most
// frequent value (smallest value on ties). A surviving column with no
// non-missing values has no mode; it is left untouched and listed in
// NoMode. The input frame is never mutated.
func HandleMissing(fr *frame.Frame, threshold float64, method string) (*frame.Frame, MissingReport, error) {
	if method != FillMedian && method != FillMean {
		return nil, MissingReport{}, fmt.Errorf("unknown fill method %q", method)
	}

	report := MissingReport{Filled: make(map[string]FillInfo)}

	rows := fr.NumRows()
	for _, name := range fr.Names() {
		col, _ := fr.Col(name)
		if rows > 0 && float64(col.Missing())/float64(rows) > threshold {
			report.DroppedColumns = append(report.DroppedColumns, name)
		}
	}
	out := fr.DropColumns(report.DroppedColumns...)

	for _, name := range out.Names() {
		col, _ := out.Col(name)
		missing := col.Missing()
		if missing == 0 {
			continue
		}
		if col.IsNumeric() {
			fill, err := numericFill(col.Floats(), method)
			if err != nil {
				return nil, MissingReport{}, fmt.Errorf("impute %s: %w", name, err)
			}
			fillCells(col, frame.Float(fill))
			report.Filled[name] = FillInfo{Method: method, Cells: missing, Value: frame.Float(fill).Render()}
			continue
		}
		mode, ok := columnMode(col)
		if !ok {
			report.NoMode = append(report.NoMode, name)
			continue
		}
		fillCells(col, mode)
		report.Filled[name] = FillInfo{Method: "mode", Cells: missing, Value: mode.Render()}
	}

	return out, report, nil
}

func numericFill(values []float64, method string) (float64, error) {
	if method == FillMean {
		return stats.Mean(values)
	}
	return stats.Median(values)
}

func fillCells(col *frame.Column, fill frame.Value) {
	for i := 0; i < col.Len(); i++ {
		if col.Value(i).IsNull() {
			col.Set(i, fill)
		}
	}
}

// columnMode returns the most frequent non-null cell. Ties resolve to the
// smallest rendered value. Returns false when every cell is null.
func columnMode(col *frame.Column) (frame.Value, bool) {
	counts := make(map[string]int)
	values := make(map[string]frame.Value)
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsNull() {
			continue
		}
		key := v.Render()
		counts[key]++
		if _, seen := values[key]; !seen {
			values[key] = v
		}
	}
	if len(counts) == 0 {
		return frame.Value{}, false
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return values[best], true
}
