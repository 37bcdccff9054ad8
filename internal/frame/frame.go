// Package frame provides the column-oriented table the cleaning pipeline
// and aggregators operate on. A Frame holds ordered, named columns of
// nullable cells; kinds are inferred per cell at load time so a column can
// hold a mix of integers and floats the way a freshly parsed CSV does,
// until the type coercion stage settles it.
package frame

import (
	"fmt"
	"strings"
)

// Kind identifies the payload type of a cell.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "string"
	}
}

// Value is a single nullable cell.
type Value struct {
	kind Kind
	null bool
	s    string
	i    int64
	f    float64
}

// Null returns a missing cell.
func Null() Value { return Value{null: true} }

// String returns a string cell.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float cell.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func (v Value) IsNull() bool { return v.null }
func (v Value) Kind() Kind   { return v.kind }

// Str returns the string payload. Only meaningful for KindString cells.
func (v Value) Str() string { return v.s }

// Int64 returns the integer payload. Only meaningful for KindInt cells.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the cell as a float. Integer cells convert; string and
// null cells return 0, so callers check kind or IsNull first.
func (v Value) Float64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// IsNumeric reports whether the cell holds a number.
func (v Value) IsNumeric() bool {
	return !v.null && (v.kind == KindInt || v.kind == KindFloat)
}

// Column is one named column of a Frame.
type Column struct {
	name  string
	cells []Value
}

func (c *Column) Name() string       { return c.name }
func (c *Column) Len() int           { return len(c.cells) }
func (c *Column) Value(i int) Value  { return c.cells[i] }
func (c *Column) Set(i int, v Value) { c.cells[i] = v }

// Missing counts null cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.cells {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// IsNumeric reports whether every non-null cell is a number and at least
// one non-null cell exists. An all-null column is not numeric.
func (c *Column) IsNumeric() bool {
	seen := false
	for _, v := range c.cells {
		if v.IsNull() {
			continue
		}
		if v.Kind() == KindString {
			return false
		}
		seen = true
	}
	return seen
}

// Kind infers the column dtype: int64 when every non-null cell is an
// integer, float64 when cells are numeric but not all integral, string
// otherwise. An all-null column reports string, mirroring an object column
// with no data.
func (c *Column) Kind() Kind {
	kind := KindString
	first := true
	for _, v := range c.cells {
		if v.IsNull() {
			continue
		}
		switch {
		case v.Kind() == KindString:
			return KindString
		case first:
			kind = v.Kind()
			first = false
		case v.Kind() != kind:
			kind = KindFloat
		}
	}
	return kind
}

// Floats returns the non-null numeric cells in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.cells))
	for _, v := range c.cells {
		if v.IsNumeric() {
			out = append(out, v.Float64())
		}
	}
	return out
}

// Unique counts distinct non-null rendered values.
func (c *Column) Unique() int {
	seen := make(map[string]struct{}, len(c.cells))
	for _, v := range c.cells {
		if v.IsNull() {
			continue
		}
		seen[v.Render()] = struct{}{}
	}
	return len(seen)
}

func (c *Column) clone() *Column {
	cells := make([]Value, len(c.cells))
	copy(cells, c.cells)
	return &Column{name: c.name, cells: cells}
}

// Frame is an ordered collection of equal-length named columns.
type Frame struct {
	cols  []*Column
	index map[string]int
}

// New creates an empty Frame with the given column names.
func New(names ...string) (*Frame, error) {
	fr := &Frame{index: make(map[string]int, len(names))}
	for _, name := range names {
		if _, dup := fr.index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		fr.index[name] = len(fr.cols)
		fr.cols = append(fr.cols, &Column{name: name})
	}
	return fr, nil
}

// NumRows returns the row count.
func (fr *Frame) NumRows() int {
	if len(fr.cols) == 0 {
		return 0
	}
	return fr.cols[0].Len()
}

// NumCols returns the column count.
func (fr *Frame) NumCols() int { return len(fr.cols) }

// Names returns the column names in order.
func (fr *Frame) Names() []string {
	names := make([]string, len(fr.cols))
	for i, c := range fr.cols {
		names[i] = c.name
	}
	return names
}

// Col returns the named column, or false when absent.
func (fr *Frame) Col(name string) (*Column, bool) {
	i, ok := fr.index[name]
	if !ok {
		return nil, false
	}
	return fr.cols[i], true
}

// HasColumn reports whether the named column exists.
func (fr *Frame) HasColumn(name string) bool {
	_, ok := fr.index[name]
	return ok
}

// AppendRow adds one row. The cell count must match the column count.
func (fr *Frame) AppendRow(cells ...Value) error {
	if len(cells) != len(fr.cols) {
		return fmt.Errorf("row has %d cells, frame has %d columns", len(cells), len(fr.cols))
	}
	for i, c := range fr.cols {
		c.cells = append(c.cells, cells[i])
	}
	return nil
}

// Row returns the cells of row i in column order.
func (fr *Frame) Row(i int) []Value {
	row := make([]Value, len(fr.cols))
	for j, c := range fr.cols {
		row[j] = c.cells[i]
	}
	return row
}

// Value returns the cell at (row, column name). The second return is false
// when the column is absent.
func (fr *Frame) Value(row int, name string) (Value, bool) {
	c, ok := fr.Col(name)
	if !ok {
		return Value{}, false
	}
	return c.Value(row), true
}

// Clone deep-copies the frame.
func (fr *Frame) Clone() *Frame {
	out := &Frame{index: make(map[string]int, len(fr.cols))}
	for i, c := range fr.cols {
		out.cols = append(out.cols, c.clone())
		out.index[c.name] = i
	}
	return out
}

// DropColumns returns a new Frame without the named columns. Columns are
// deep-copied so the result never aliases the receiver. Unknown names are
// ignored.
func (fr *Frame) DropColumns(names ...string) *Frame {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &Frame{index: make(map[string]int)}
	for _, c := range fr.cols {
		if _, gone := drop[c.name]; gone {
			continue
		}
		out.index[c.name] = len(out.cols)
		out.cols = append(out.cols, c.clone())
	}
	return out
}

// SelectRows returns a new Frame containing only the given row indexes, in
// the given order.
func (fr *Frame) SelectRows(keep []int) *Frame {
	out := &Frame{index: make(map[string]int, len(fr.cols))}
	for i, c := range fr.cols {
		cells := make([]Value, 0, len(keep))
		for _, r := range keep {
			cells = append(cells, c.cells[r])
		}
		out.cols = append(out.cols, &Column{name: c.name, cells: cells})
		out.index[c.name] = i
	}
	return out
}

// Records renders the frame as one map per row, with nulls as nil. Used by
// the dashboard's JSON endpoints.
func (fr *Frame) Records() []map[string]any {
	out := make([]map[string]any, 0, fr.NumRows())
	for i := 0; i < fr.NumRows(); i++ {
		rec := make(map[string]any, len(fr.cols))
		for _, c := range fr.cols {
			v := c.cells[i]
			switch {
			case v.IsNull():
				rec[c.name] = nil
			case v.Kind() == KindInt:
				rec[c.name] = v.Int64()
			case v.Kind() == KindFloat:
				rec[c.name] = v.Float64()
			default:
				rec[c.name] = v.Str()
			}
		}
		out = append(out, rec)
	}
	return out
}

// RowKey renders row i into a string that is identical exactly for rows
// whose cells all match, including null positions. Used for duplicate
// detection.
func (fr *Frame) RowKey(i int) string {
	var b strings.Builder
	for j, c := range fr.cols {
		if j > 0 {
			b.WriteByte(0x1f)
		}
		v := c.cells[i]
		if v.IsNull() {
			b.WriteByte(0x00)
			continue
		}
		b.WriteString(v.Render())
	}
	return b.String()
}
