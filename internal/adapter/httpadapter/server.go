// Package httpadapter exposes the report page, the per-section JSON API, and
// the operational endpoints.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/firewatch-kr/wildfire-report-service/internal/aggregate"
	"github.com/firewatch-kr/wildfire-report-service/internal/report"
)

// Server exposes the composed report page, JSON aggregates, health,
// readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	builder    *report.Builder
	renderer   *report.Renderer
	logger     *slog.Logger
}

// NewServer wires all routes onto a stdlib mux.
func NewServer(addr string, builder *report.Builder, renderer *report.Renderer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		builder:  builder,
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/hourly", s.handleHourly)
	mux.HandleFunc("GET /api/causes/hourly", s.handleCauseHourly)
	mux.HandleFunc("GET /api/monthly", s.handleMonthly)
	mux.HandleFunc("GET /api/yearly", s.handleYearly)
	mux.HandleFunc("GET /api/regions/yearly", s.handleRegionYearly)
	mux.HandleFunc("GET /api/mobilization", s.handleMobilization)
	mux.HandleFunc("GET /api/casualties", s.handleCasualties)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleIndex serves the composed report page. Before the first build
// completes, the page carries only the loading overlay.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.builder.Ready() {
		overlay, err := s.renderer.ReadFragment("loading")
		if err != nil {
			s.fail(w, "render loading page", err)
			return
		}
		page, err := s.renderer.RenderPage("index", overlay)
		if err != nil {
			s.fail(w, "render loading page", err)
			return
		}
		writeHTML(w, http.StatusOK, page)
		return
	}

	bundle := s.builder.Latest()
	sections := []struct {
		fragment string
		data     map[string]any
	}{
		{"yearly_bars", map[string]any{report.TokenYearly: map[string]any{
			"regional": bundle.YearlyRegional,
			"national": bundle.YearlyNational,
		}}},
		{"region_map", map[string]any{report.TokenRegion: bundle.RegionYearly}},
		{"monthly_season", map[string]any{report.TokenMonthly: bundle.Monthly}},
		{"hourly_cause", map[string]any{
			report.TokenHourly: bundle.Hourly,
			report.TokenCause:  bundle.CauseHourly,
		}},
		{"mobilization_panels", map[string]any{report.TokenMobilization: bundle.Mobilization}},
		{"casualty_lines", map[string]any{report.TokenCasualty: bundle.Casualties}},
	}

	var body strings.Builder
	for _, sec := range sections {
		html, err := s.renderer.Render(sec.fragment, sec.data)
		if err != nil {
			s.fail(w, "render "+sec.fragment, err)
			return
		}
		body.WriteString(html)
		body.WriteString("\n")
	}

	page, err := s.renderer.RenderPage("index", body.String())
	if err != nil {
		s.fail(w, "render page", err)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (s *Server) handleHourly(w http.ResponseWriter, _ *http.Request) {
	records, err := s.builder.Hourly()
	if err != nil {
		s.fail(w, "hourly", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCauseHourly(w http.ResponseWriter, r *http.Request) {
	topN := s.builder.Defaults().TopCauses
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid top parameter %q", raw))
			return
		}
		topN = n
	}

	records, err := s.builder.CauseHourly(topN)
	if err != nil {
		s.fail(w, "causes", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	years, ok := s.yearRange(w, r)
	if !ok {
		return
	}
	records, err := s.builder.Monthly(years)
	if err != nil {
		s.fail(w, "monthly", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleYearly(w http.ResponseWriter, r *http.Request) {
	years, ok := s.yearRange(w, r)
	if !ok {
		return
	}
	dataset := r.URL.Query().Get("dataset")
	switch dataset {
	case "", "regional":
		dataset = "regional"
	case "national":
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid dataset parameter %q", dataset))
		return
	}

	records, err := s.builder.Yearly(dataset, years)
	if errors.Is(err, report.ErrNoNationalDataset) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.fail(w, "yearly", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRegionYearly(w http.ResponseWriter, _ *http.Request) {
	records, err := s.builder.RegionYearly()
	if err != nil {
		s.fail(w, "regions", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleMobilization(w http.ResponseWriter, _ *http.Request) {
	records, err := s.builder.Mobilization()
	if err != nil {
		s.fail(w, "mobilization", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCasualties(w http.ResponseWriter, _ *http.Request) {
	records, err := s.builder.Casualties()
	if err != nil {
		s.fail(w, "casualties", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.builder.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// yearRange parses optional from/to query parameters. Responds 400 and
// returns ok=false on malformed input.
func (s *Server) yearRange(w http.ResponseWriter, r *http.Request) (aggregate.YearRange, bool) {
	var years aggregate.YearRange
	q := r.URL.Query()

	for _, p := range []struct {
		name   string
		target *int
	}{
		{"from", &years.From},
		{"to", &years.To},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter %q", p.name, raw))
			return aggregate.YearRange{}, false
		}
		*p.target = n
	}

	if years.From != 0 && years.To != 0 && years.From > years.To {
		writeError(w, http.StatusBadRequest, "from must not exceed to")
		return aggregate.YearRange{}, false
	}
	return years, true
}

// fail maps internal errors onto the JSON error surface. Row-level defects
// never reach here; anything that does is structural.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck // best-effort response
}
