package frame

import (
	"fmt"
	"strings"
)

// ColumnProfile summarizes one column for the load diagnostics report.
type ColumnProfile struct {
	Name       string  `json:"name"`
	Kind       string  `json:"dtype"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missing_pct"`
	Unique     int     `json:"unique"`
}

// Profile is the shape/dtype/missing/unique report produced after load.
type Profile struct {
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Columns []ColumnProfile `json:"columns"`
}

// Profile computes per-column diagnostics over the frame.
func (fr *Frame) Profile() Profile {
	p := Profile{
		Rows:    fr.NumRows(),
		Cols:    fr.NumCols(),
		Columns: make([]ColumnProfile, 0, fr.NumCols()),
	}
	for _, c := range fr.cols {
		missing := c.Missing()
		pct := 0.0
		if p.Rows > 0 {
			pct = float64(missing) / float64(p.Rows) * 100
		}
		p.Columns = append(p.Columns, ColumnProfile{
			Name:       c.name,
			Kind:       c.Kind().String(),
			Missing:    missing,
			MissingPct: pct,
			Unique:     c.Unique(),
		})
	}
	return p
}

// String renders the profile as a fixed-width table for the profile command.
func (p Profile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows, %d columns\n", p.Rows, p.Cols)
	fmt.Fprintf(&b, "%-20s %-10s %-14s %s\n", "column", "dtype", "missing", "unique")
	b.WriteString(strings.Repeat("-", 56))
	b.WriteByte('\n')
	for _, c := range p.Columns {
		fmt.Fprintf(&b, "%-20s %-10s %-4d (%5.1f%%)  %d\n", c.Name, c.Kind, c.Missing, c.MissingPct, c.Unique)
	}
	return b.String()
}
