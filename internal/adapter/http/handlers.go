package http

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/analysis"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/charts"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Bird Population &amp; Climate Dashboard</title></head>
<body>
<h1>Bird Population &amp; Climate Dashboard</h1>
<h2>Population Trends</h2>
<img src="/charts/population" alt="population trends">
<h2>Migration Shift Extremes</h2>
<img src="/charts/shift" alt="migration shift extremes">
<h2>Species Diversity</h2>
<img src="/charts/diversity" alt="species diversity">
<h2>Habitat Suitability</h2>
{{range .Species}}
<h3>{{.}}</h3>
<img src="/charts/suitability?species={{.}}" alt="habitat suitability">
{{end}}
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Species []string }{data.trends.Species}); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleSpecies(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{domain.ColSpecies: data.trends.Species})
}

func (s *Server) handleCountries(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{domain.ColCountry: data.countries})
}

func (s *Server) handleYearly(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	fr, err := data.trends.ToFrame()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fr.Records())
}

func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	if country != "" && !contains(data.countries, country) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown country %q", country))
		return
	}
	if species != "" && !contains(data.trends.Species, species) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown species %q", species))
		return
	}
	writeJSON(w, http.StatusOK, filterShifts(data.shifts, country, species))
}

func (s *Server) handleDiversity(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, data.diversity)
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	if species == "" {
		writeError(w, http.StatusBadRequest, "missing species parameter")
		return
	}
	corr, err := data.trends.CorrelateEnvironment(species)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		domain.ColSpecies:       corr.Species,
		domain.ColTemperature:   jsonNumber(corr.Temperature),
		domain.ColPrecipitation: jsonNumber(corr.Precipitation),
		domain.ColTraffic:       jsonNumber(corr.Traffic),
	})
}

func (s *Server) handlePopulationChart(w http.ResponseWriter, r *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	trends := data.trends
	if species != "" {
		if !contains(trends.Species, species) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown species %q", species))
			return
		}
		trends = singleSpecies(trends, species)
	}
	s.serveChart(w, fmt.Sprintf("population:%s", species), func() ([]byte, error) {
		return charts.PopulationTrends(trends)
	})
}

func (s *Server) handleShiftChart(w http.ResponseWriter, r *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	if country != "" && !contains(data.countries, country) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown country %q", country))
		return
	}
	if species != "" && !contains(data.trends.Species, species) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown species %q", species))
		return
	}
	rows := filterShifts(data.shifts, country, species)
	s.serveChart(w, fmt.Sprintf("shift:%s|%s", country, species), func() ([]byte, error) {
		return charts.ShiftExtremes(rows)
	})
}

func (s *Server) handleDiversityChart(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	s.serveChart(w, "diversity", func() ([]byte, error) {
		return charts.SpeciesDiversity(data.diversity)
	})
}

func (s *Server) handleSuitabilityChart(w http.ResponseWriter, r *http.Request) {
	data, ok := s.currentDataset()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	if species == "" {
		writeError(w, http.StatusBadRequest, "missing species parameter")
		return
	}
	points, err := analysis.HabitatSuitability(data.frame, species)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.serveChart(w, fmt.Sprintf("suitability:%s", species), func() ([]byte, error) {
		return charts.HabitatSuitability(species, points)
	})
}

// serveChart answers from the LRU cache when possible, rendering and
// caching on miss.
func (s *Server) serveChart(w http.ResponseWriter, key string, render func() ([]byte, error)) {
	png, ok := s.cache.get(key)
	if ok {
		s.metrics.ChartCache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.ChartCache.WithLabelValues("miss").Inc()
		start := time.Now()
		var err error
		png, err = render()
		s.metrics.ChartRenderDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.logger.Error("render chart", "chart", key, "error", err)
			writeError(w, http.StatusInternalServerError, "chart rendering failed")
			return
		}
		s.cache.put(key, png)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck // client may disconnect mid-image
}

// jsonNumber keeps NaN out of JSON output by mapping it to null.
func jsonNumber(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// filterShifts narrows the shift rows to one country and/or species.
// Empty filters match everything; the result preserves order.
func filterShifts(rows []analysis.ShiftExtreme, country, species string) []analysis.ShiftExtreme {
	if country == "" && species == "" {
		return rows
	}
	out := make([]analysis.ShiftExtreme, 0, len(rows))
	for _, r := range rows {
		if country != "" && r.Country != country {
			continue
		}
		if species != "" && r.Species != species {
			continue
		}
		out = append(out, r)
	}
	return out
}

// singleSpecies narrows the trends to one species' population series,
// keeping the year axis and climate means intact.
func singleSpecies(t analysis.YearlyTrends, species string) analysis.YearlyTrends {
	out := t
	out.Species = []string{species}
	out.Population = map[string][]float64{species: t.Population[species]}
	return out
}
