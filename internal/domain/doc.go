// Package domain models the bird occurrence and climate dataset.
//
// # Data Source
//
// Observations come from a combined occurrence/climate survey of bird
// species across Asia, delivered as a single delimited file with one row
// per observation. Each row carries the species and country, the survey
// year, coordinates, a population count, climate readings (temperature in
// degrees Celsius, precipitation in millimeters), a road-traffic index
// used as an urbanization proxy, and the recorded range shift of the
// species in kilometers (Shift_km).
//
// # Column Conventions
//
// Upstream files are inconsistent about header casing ("Year" vs "year",
// "Bird_Species" vs "bird_species"). Headers are canonicalized exactly
// once, at load time: trimmed, lower-cased, interior spaces replaced with
// underscores. Everything downstream refers to the canonical names defined
// in this package (ColYear, ColSpecies, ...). There is no later rename
// step, so no component can disagree about casing.
//
// Missing values appear as empty cells or the sentinels "NA", "N/A",
// "NaN", "nan" and "null". Duplicate rows are a known defect of the
// source exports and are removed during cleaning.
//
// # Clock
//
// Report timestamps use a package-level clockwork clock so tests and the
// fixture generator can freeze time via [SetClock].
package domain
