package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
)

// missingSentinels are cell texts treated as null on load, besides the
// empty string. Comparison is case-insensitive on the trimmed cell.
var missingSentinels = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// ParseCell converts raw cell text into a typed Value: null for empty or
// sentinel text, int64 when the text is an integer, float64 when it parses
// as a number, string otherwise.
func ParseCell(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Null()
	}
	if _, miss := missingSentinels[strings.ToLower(trimmed)]; miss {
		return Null()
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) {
		return Float(f)
	}
	return String(text)
}

// Render converts a cell back to CSV text. Nulls render empty; floats use
// the shortest representation that round-trips.
func (v Value) Render() string {
	switch {
	case v.null:
		return ""
	case v.kind == KindInt:
		return strconv.FormatInt(v.i, 10)
	case v.kind == KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// ReadCSV loads a delimited file into a Frame. Headers are canonicalized
// (trimmed, lower-cased, spaces to underscores); read errors, including
// ragged rows, propagate unwrapped beyond the path context.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	fr, err := ReadCSVFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fr, nil
}

// ReadCSVFrom loads CSV data from a reader. See ReadCSV.
func ReadCSVFrom(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = domain.CanonicalName(h)
	}
	fr, err := New(names...)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return fr, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cells := make([]Value, len(record))
		for i, cell := range record {
			cells[i] = ParseCell(cell)
		}
		if err := fr.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
}

// WriteCSV writes the frame with canonical headers and no index column.
func (fr *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fr.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, fr.NumCols())
	for i := 0; i < fr.NumRows(); i++ {
		for j, c := range fr.cols {
			record[j] = c.cells[i].Render()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
