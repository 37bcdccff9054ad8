// Command genmock generates a synthetic raw bird observation dataset for
// testing the cleaning pipeline. The output deliberately includes the
// defects the pipeline must handle: duplicate rows, missing-value
// sentinels, out-of-range years, ragged text casing, and mixed-case
// headers.
//
// Usage:
//
//	go run ./cmd/genmock -out data/bird_migration_data.csv -rows 500 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var species = []string{
	"arctic tern", "barn swallow", "common crane",
	"EURASIAN SKYLARK", "  white stork  ", "osprey",
}

var countries = []string{
	"denmark", "GERMANY", "  sweden", "norway", "netherlands",
}

var missingSentinels = []string{"", "NA", "N/A", "NaN", "null"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw CSV dataset")
	rows := flag.Int("rows", 500, "number of base rows to generate")
	seed := flag.Int64("seed", 42, "random seed for reproducible output")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	records := [][]string{
		// Mixed-case headers with stray spaces, normalized at load time.
		{"Country", "Bird Species", "YEAR", " Population", "Temperature", "Precipitation", "Latitude", "Longitude", "Shift KM", "Traffic"},
	}
	for i := 0; i < *rows; i++ {
		records = append(records, generateRow(rng))
	}

	// Duplicate a slice of rows verbatim so deduplication has work to do.
	dupes := *rows / 20
	for i := 0; i < dupes; i++ {
		src := 1 + rng.Intn(*rows)
		records = append(records, records[src])
	}
	log.Printf("generated %d rows (%d duplicates)", len(records)-1, dupes)

	if err := writeCSV(*out, records); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	log.Printf("wrote dataset: %s", *out)
	return nil
}

func generateRow(rng *rand.Rand) []string {
	year := 1970 + rng.Intn(56)
	// A few percent of rows fall outside the plausible year window.
	if rng.Float64() < 0.03 {
		year = 1900 + rng.Intn(60)
	}

	row := []string{
		pick(rng, countries),
		pick(rng, species),
		strconv.Itoa(year),
		maybeMissing(rng, strconv.Itoa(1000+rng.Intn(90000)), 0.05),
		maybeMissing(rng, fmt.Sprintf("%.1f", -5+rng.Float64()*30), 0.05),
		maybeMissing(rng, fmt.Sprintf("%.1f", rng.Float64()*2000), 0.05),
		fmt.Sprintf("%.4f", 54+rng.Float64()*16),
		fmt.Sprintf("%.4f", 4+rng.Float64()*20),
		maybeMissing(rng, fmt.Sprintf("%.2f", rng.Float64()*100), 0.08),
		maybeMissing(rng, strconv.Itoa(rng.Intn(100000)), 0.05),
	}
	return row
}

func pick(rng *rand.Rand, values []string) string {
	v := values[rng.Intn(len(values))]
	// Occasionally mangle casing beyond the baked-in variants.
	if rng.Float64() < 0.1 {
		v = strings.ToUpper(v)
	}
	return v
}

func maybeMissing(rng *rand.Rand, value string, p float64) string {
	if rng.Float64() < p {
		return missingSentinels[rng.Intn(len(missingSentinels))]
	}
	return value
}

func writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}
