package pipeline

import "github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"

// DedupeReport is the outcome of the duplicate-removal stage.
type DedupeReport struct {
	Duplicates int `json:"duplicates"`
}

// Dedupe removes rows identical across all columns, keeping the first
// occurrence of each duplicate group. Running it on its own output is a
// no-op.
func Dedupe(fr *frame.Frame) (*frame.Frame, DedupeReport) {
	seen := make(map[string]struct{}, fr.NumRows())
	keep := make([]int, 0, fr.NumRows())
	for i := 0; i < fr.NumRows(); i++ {
		key := fr.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	return fr.SelectRows(keep), DedupeReport{Duplicates: fr.NumRows() - len(keep)}
}
