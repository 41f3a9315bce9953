package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-tools/internal/analytics"
	"trading-tools/internal/charts"
	"trading-tools/internal/store"
	"trading-tools/internal/types"
)

type stubSource struct {
	records []types.Record
}

func (s *stubSource) ParseFile(ctx context.Context) []types.Record {
	return s.records
}

type stubFetcher struct {
	enabled bool
	err     error
	calls   int
}

func (f *stubFetcher) Enabled() bool { return f.enabled }

func (f *stubFetcher) Fetch(ctx context.Context) error {
	f.calls++
	return f.err
}

func sampleRecords() []types.Record {
	march := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	return []types.Record{
		types.TradeRecord{Ticket: "100001", OpenTime: "2024.03.05 10:00:00", Kind: types.KindBuy,
			Size: 1.5, Symbol: "EURUSD", Profit: 100, Commission: -5, OpenedAt: march},
		types.TradeRecord{Ticket: "100002", OpenTime: "2024.04.02 09:00:00", Kind: types.KindSell,
			Size: 0.75, Symbol: "GBPUSD", Profit: -50, OpenedAt: april},
		types.BalanceRecord{Ticket: "200001", Date: "2024.01.10 09:00:00", Description: "Deposit",
			Amount: 1000, At: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	}
}

func testServer(t *testing.T, records []types.Record, fetcher *stubFetcher) *Server {
	t.Helper()

	cfg := store.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	require.NoError(t, os.WriteFile(cfg.ExportPath(), []byte("<html></html>"), 0o644))

	return New(cfg, &stubSource{records: records}, fetcher,
		analytics.NewAnalyzer(cfg.Analytics.FeeMarker),
		charts.NewRenderer(cfg.Charts.Width, cfg.Charts.Height))
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSummaryEndpoint(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, 50.0, data["total_pnl"])
	assert.Equal(t, 2.0, data["trade_count"])
	assert.Equal(t, 1000.0, data["total_deposits"])
	assert.Equal(t, 50.0, data["win_rate"])
	assert.Nil(t, body["message"])
}

func TestSummaryEndpointWindow(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/summary?from_date=2024.03.01&to_date=2024.03.31")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, 100.0, data["total_pnl"])
	assert.Equal(t, 1.0, data["trade_count"])
	assert.Equal(t, 0.0, data["total_deposits"])

	period := data["period"].(map[string]any)
	assert.Equal(t, "2024.03.01", period["from_date"])
	assert.Equal(t, "2024.03.31", period["to_date"])
}

func TestSummaryEndpointNoData(t *testing.T) {
	s := testServer(t, nil, nil)
	rec := doRequest(s, http.MethodGet, "/api/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "No trade data available", body["message"])
}

func TestSummaryEndpointInvalidDate(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/summary?from_date=03-05-2024")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "invalid from_date")
}

func TestTradesEndpoint(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/trades")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["count"])

	trades := body["data"].([]any)
	require.Len(t, trades, 2)
	first := trades[0].(map[string]any)
	assert.Equal(t, "100001", first["ticket"])
	assert.Equal(t, "buy", first["type"])
	// Balance entries never surface through the trades endpoint.
	for _, tr := range trades {
		assert.NotEqual(t, "200001", tr.(map[string]any)["ticket"])
	}
}

func TestTradesEndpointFiltered(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/trades?from_date=2024.04.01")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, 1.0, body["count"])
	trades := body["data"].([]any)
	require.Len(t, trades, 1)
	assert.Equal(t, "100002", trades[0].(map[string]any)["ticket"])
}

func TestAnalysisEndpoint(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/analysis?period=monthly")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "monthly", data["period"])
	assert.Equal(t, 3.0, data["total_trades"])
	results := data["results"].([]any)
	require.Len(t, results, 3)
	assert.Equal(t, "2024-01", results[0].(map[string]any)["period"])
}

func TestAnalysisEndpointUnknownPeriod(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/analysis?period=quarterly")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "monthly", data["period"])
}

func TestProfitChartEndpoint(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/charts/profit")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.True(t, strings.Contains(rec.Body.String(), "echarts"))
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t, sampleRecords(), nil)
	rec := doRequest(s, http.MethodGet, "/api/health")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, 2.0, body["trades_count"])
}

func TestHealthEndpointMissingExport(t *testing.T) {
	s := testServer(t, nil, nil)
	require.NoError(t, os.Remove(s.cfg.ExportPath()))

	rec := doRequest(s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "unhealthy", body["status"])
	assert.NotEmpty(t, body["error"])
}

func TestRefreshEndpointDisabled(t *testing.T) {
	s := testServer(t, nil, &stubFetcher{enabled: false})
	rec := doRequest(s, http.MethodPost, "/api/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No statement source configured", body["message"])
}

func TestRefreshEndpoint(t *testing.T) {
	fetcher := &stubFetcher{enabled: true}
	s := testServer(t, nil, fetcher)
	rec := doRequest(s, http.MethodPost, "/api/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, fetcher.calls)
}

func TestRefreshEndpointFailure(t *testing.T) {
	fetcher := &stubFetcher{enabled: true, err: errors.New("remote unreachable")}
	s := testServer(t, nil, fetcher)
	rec := doRequest(s, http.MethodPost, "/api/refresh")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "remote unreachable")
}

func TestDashboardEndpoint(t *testing.T) {
	s := testServer(t, nil, nil)
	s.cfg.Data.TemplatesDir = t.TempDir()
	page := []byte("<html><body><h1>Trading Dashboard</h1></body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(s.cfg.Data.TemplatesDir, "index.html"), page, 0o644))

	rec := doRequest(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trading Dashboard")
}

func TestDashboardEndpointMissingTemplate(t *testing.T) {
	s := testServer(t, nil, nil)
	s.cfg.Data.TemplatesDir = t.TempDir()

	rec := doRequest(s, http.MethodGet, "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}
