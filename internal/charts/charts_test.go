package charts

import (
	"strings"
	"testing"

	"trading-tools/internal/types"
)

func sampleResult() types.BucketedResult {
	return types.BucketedResult{
		TotalProfit: 130,
		TotalVolume: 13,
		TotalTrades: 13,
		Granularity: types.Monthly,
		Results: []types.PeriodBucket{
			{Label: "2024-01", Profit: 50, Volume: 5, Trades: 5, Wins: 5},
			{Label: "2024-02", Profit: -20, Volume: 4, Trades: 4, Losses: 4},
			{Label: "2024-03", Profit: 100, Volume: 4, Trades: 4, Wins: 4},
		},
	}
}

func TestProfitChart(t *testing.T) {
	html, err := NewRenderer(800, 300).ProfitChart(sampleResult())
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	for _, want := range []string{"Monthly profit", "2024-01", "2024-03", "800px"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected rendered chart to contain %q", want)
		}
	}
}

func TestVolumeChart(t *testing.T) {
	html, err := NewRenderer(0, 0).VolumeChart(sampleResult())
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if !strings.Contains(html, "Monthly volume") {
		t.Error("expected volume chart title")
	}
	// Zero dimensions fall back to the defaults.
	if !strings.Contains(html, "1200px") {
		t.Error("expected default width in rendered document")
	}
}

func TestChartEmptyResult(t *testing.T) {
	html, err := NewRenderer(0, 0).ProfitChart(types.BucketedResult{Granularity: types.Daily})
	if err != nil {
		t.Fatalf("empty input should still render: %v", err)
	}
	if !strings.Contains(html, "Daily profit") {
		t.Error("expected titled document for empty input")
	}
}
