package server

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/render"

	"trading-tools/internal/analytics"
	"trading-tools/internal/export"
	"trading-tools/internal/logger"
	"trading-tools/internal/types"
)

// envelope is the JSON wrapper shared by the API endpoints: 200 carries
// success plus data (including "no data" cases), 500 carries the error.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tmplPath := filepath.Join(s.cfg.Data.TemplatesDir, "index.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error loading dashboard")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, nil); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to render dashboard", err)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error retrieving trading summary")
		return
	}

	records := s.source.ParseFile(r.Context())
	summary := s.analyzer.Summarize(records, from, to)

	env := envelope{Success: true, Data: summary}
	if len(records) == 0 {
		env.Message = "No trade data available"
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, env)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error retrieving trades")
		return
	}

	records := s.source.ParseFile(r.Context())
	records = analytics.FilterByRange(records, from, to)

	trades := []types.TradeRecord{}
	for _, rec := range records {
		if t, ok := rec.(types.TradeRecord); ok {
			trades = append(trades, t)
		}
	}

	count := len(trades)
	env := envelope{Success: true, Data: trades, Count: &count}
	if len(records) == 0 {
		env.Message = "No trade data available"
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, env)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	records := s.source.ParseFile(r.Context())
	result := s.analyzer.Bucketize(records, granularityParam(r))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, envelope{Success: true, Data: result})
}

func (s *Server) handleProfitChart(w http.ResponseWriter, r *http.Request) {
	records := s.source.ParseFile(r.Context())
	result := s.analyzer.Bucketize(records, granularityParam(r))

	html, err := s.renderer.ProfitChart(result)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error generating profit chart")
		return
	}
	writeChart(w, html)
}

func (s *Server) handleVolumeChart(w http.ResponseWriter, r *http.Request) {
	records := s.source.ParseFile(r.Context())
	result := s.analyzer.Bucketize(records, granularityParam(r))

	html, err := s.renderer.VolumeChart(result)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error generating volume chart")
		return
	}
	writeChart(w, html)
}

type healthResponse struct {
	Success     bool   `json:"success"`
	Status      string `json:"status"`
	TradesCount int    `json:"trades_count"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.cfg.ExportPath()); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, healthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}

	trades := 0
	for _, rec := range s.source.ParseFile(r.Context()) {
		if _, ok := rec.(types.TradeRecord); ok {
			trades++
		}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{Success: true, Status: "healthy", TradesCount: trades})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil || !s.fetcher.Enabled() {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, envelope{Success: false, Message: "No statement source configured"})
		return
	}
	if err := s.fetcher.Fetch(r.Context()); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, "Error refreshing statement")
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, envelope{Success: true, Message: "Statement refreshed"})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error, msg string) {
	logger.ErrorWithErr(r.Context(), msg, err)
	render.Status(r, status)
	render.JSON(w, r, envelope{Success: false, Error: err.Error(), Message: msg})
}

func writeChart(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// dateRange reads the optional from_date/to_date query parameters
// (YYYY.MM.DD).
func dateRange(r *http.Request) (from, to time.Time, err error) {
	q := r.URL.Query()
	if v := q.Get("from_date"); v != "" {
		t, ok := export.ParseDate(v)
		if !ok {
			return from, to, fmt.Errorf("invalid from_date %q: expected YYYY.MM.DD", v)
		}
		from = t
	}
	if v := q.Get("to_date"); v != "" {
		t, ok := export.ParseDate(v)
		if !ok {
			return from, to, fmt.Errorf("invalid to_date %q: expected YYYY.MM.DD", v)
		}
		to = t
	}
	return from, to, nil
}

func granularityParam(r *http.Request) types.Granularity {
	return types.Granularity(r.URL.Query().Get("period"))
}
