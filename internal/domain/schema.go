package domain

import "strings"

// Canonical column names. Headers are canonicalized to these at load time;
// no other spelling appears past the loader.
const (
	ColYear          = "year"
	ColPopulation    = "population"
	ColSpecies       = "bird_species"
	ColCountry       = "country"
	ColTemperature   = "temperature"
	ColPrecipitation = "precipitation"
	ColLatitude      = "latitude"
	ColLongitude     = "longitude"
	ColShiftKm       = "shift_km"
	ColTraffic       = "traffic"
)

// RequiredColumns are the columns the aggregators depend on. The profile
// command fails when any of these is absent from the input.
var RequiredColumns = []string{
	ColYear,
	ColPopulation,
	ColSpecies,
	ColCountry,
	ColTemperature,
	ColPrecipitation,
	ColShiftKm,
	ColTraffic,
}

// TextColumns are normalized (trimmed, title-cased) during cleaning.
var TextColumns = []string{ColSpecies, ColCountry}

// NumericKind is the target of a best-effort column coercion.
type NumericKind int

const (
	NumericInt NumericKind = iota
	NumericFloat
)

func (k NumericKind) String() string {
	if k == NumericInt {
		return "int64"
	}
	return "float64"
}

// CoercionTargets maps columns to the numeric kind they are coerced to.
// Columns absent from the input are skipped and reported as such.
var CoercionTargets = map[string]NumericKind{
	ColYear:          NumericInt,
	ColPopulation:    NumericInt,
	ColLatitude:      NumericFloat,
	ColLongitude:     NumericFloat,
	ColTemperature:   NumericFloat,
	ColPrecipitation: NumericFloat,
	ColShiftKm:       NumericFloat,
}

// CanonicalName converts a raw header to its canonical form: trimmed,
// lower-cased, interior spaces replaced with underscores.
func CanonicalName(header string) string {
	name := strings.TrimSpace(header)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "_")
}
