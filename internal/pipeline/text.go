package pipeline

import (
	"strings"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextReport lists the columns the text normalizer touched.
type TextReport struct {
	Columns []string `json:"columns,omitempty"`
}

// NormalizeText trims and title-cases the species and country columns.
// Non-string cells are rendered to text first; nulls stay null. Absent
// columns are skipped. The input frame is never mutated.
func NormalizeText(fr *frame.Frame) (*frame.Frame, TextReport) {
	out := fr.Clone()
	report := TextReport{}
	titler := cases.Title(language.Und)

	for _, name := range domain.TextColumns {
		col, ok := out.Col(name)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			v := col.Value(i)
			if v.IsNull() {
				continue
			}
			text := v.Render()
			col.Set(i, frame.String(titler.String(strings.TrimSpace(text))))
		}
		report.Columns = append(report.Columns, name)
	}
	return out, report
}
