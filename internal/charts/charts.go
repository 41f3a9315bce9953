package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"trading-tools/internal/types"
)

// Renderer turns bucketized analytics into embeddable chart documents.
// It replaces chart image files on disk: charts are rendered per request
// from freshly parsed data.
type Renderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 400
	}
	return &Renderer{width: width, height: height}
}

// ProfitChart renders per-bucket profit as a standalone HTML bar chart.
func (r *Renderer) ProfitChart(result types.BucketedResult) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", r.width),
			Height: fmt.Sprintf("%dpx", r.height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s profit", titleize(result.Granularity)),
			Subtitle: fmt.Sprintf("total %.2f over %d records", result.TotalProfit, result.TotalTrades),
		}),
	)

	labels := make([]string, 0, len(result.Results))
	profits := make([]opts.BarData, 0, len(result.Results))
	for _, b := range result.Results {
		labels = append(labels, b.Label)
		profits = append(profits, opts.BarData{Value: b.Profit})
	}
	bar.SetXAxis(labels).AddSeries("Profit", profits)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render profit chart: %w", err)
	}
	return buf.String(), nil
}

// VolumeChart renders per-bucket traded volume as an HTML line chart.
func (r *Renderer) VolumeChart(result types.BucketedResult) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", r.width),
			Height: fmt.Sprintf("%dpx", r.height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s volume", titleize(result.Granularity)),
		}),
	)

	labels := make([]string, 0, len(result.Results))
	volumes := make([]opts.LineData, 0, len(result.Results))
	for _, b := range result.Results {
		labels = append(labels, b.Label)
		volumes = append(volumes, opts.LineData{Value: b.Volume})
	}
	line.SetXAxis(labels).AddSeries("Volume", volumes)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render volume chart: %w", err)
	}
	return buf.String(), nil
}

func titleize(g types.Granularity) string {
	switch g {
	case types.Yearly:
		return "Yearly"
	case types.Weekly:
		return "Weekly"
	case types.Daily:
		return "Daily"
	default:
		return "Monthly"
	}
}
