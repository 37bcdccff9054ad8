// Command profile inspects a raw or cleaned dataset file and prints a
// per-column summary: inferred dtype, missing counts, and distinct
// values. It exits non-zero when required columns are absent, so it can
// gate a pipeline run in CI.
//
// Usage:
//
//	go run ./cmd/profile -input data/bird_migration_data.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
)

func main() {
	input := flag.String("input", "", "path to a CSV or XLSX dataset file")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fr, err := frame.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	profile := fr.Profile()
	fmt.Printf("=== Dataset Profile: %s ===\n\n", path)
	fmt.Println(profile)

	var missing []string
	for _, name := range domain.RequiredColumns {
		if !fr.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		fmt.Println()
		for _, name := range missing {
			fmt.Printf("MISSING required column: %s\n", name)
		}
		fmt.Println("\nProfile FAILED.")
		return 1
	}

	fmt.Println("\nAll required columns present.")
	return 0
}
