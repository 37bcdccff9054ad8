package frame

import (
	"fmt"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of an Excel workbook into a Frame with
// the same header canonicalization and cell parsing as ReadCSV. Short rows
// are padded with nulls; excess cells past the header width are dropped,
// matching how spreadsheet exports pad ragged data.
func ReadXLSX(path string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("read %s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty sheet", path)
	}

	names := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		names[i] = domain.CanonicalName(h)
	}
	fr, err := New(names...)
	if err != nil {
		return nil, err
	}

	for _, row := range rows[1:] {
		cells := make([]Value, len(names))
		for i := range names {
			if i < len(row) {
				cells[i] = ParseCell(row[i])
			} else {
				cells[i] = Null()
			}
		}
		if err := fr.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return fr, nil
}

// ReadFile dispatches on the file extension: .xlsx loads through excelize,
// anything else is treated as CSV.
func ReadFile(path string) (*Frame, error) {
	if hasXLSXExt(path) {
		return ReadXLSX(path)
	}
	return ReadCSV(path)
}

func hasXLSXExt(path string) bool {
	n := len(path)
	return n >= 5 && (path[n-5:] == ".xlsx" || path[n-5:] == ".XLSX")
}
