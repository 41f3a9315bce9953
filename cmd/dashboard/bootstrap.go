package main

import (
	"context"
	"fmt"
	"os"

	"trading-tools/internal/analytics"
	"trading-tools/internal/charts"
	"trading-tools/internal/export"
	"trading-tools/internal/export/exportobs"
	"trading-tools/internal/interfaces"
	"trading-tools/internal/logger"
	"trading-tools/internal/server"
	"trading-tools/internal/store"
	"trading-tools/internal/trace"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// buildServer wires the record source, fetcher, analyzer and chart
// renderer into the HTTP server.
func buildServer(ctx context.Context, cfg *store.Config) *server.Server {
	source := initializeSource(ctx, cfg)
	fetcher := initializeFetcher(ctx, cfg)
	analyzer := analytics.NewAnalyzer(cfg.Analytics.FeeMarker)
	renderer := charts.NewRenderer(cfg.Charts.Width, cfg.Charts.Height)
	return server.New(cfg, source, fetcher, analyzer, renderer)
}

// initializeSource builds the statement parser wrapped with observability.
func initializeSource(ctx context.Context, cfg *store.Config) interfaces.RecordSource {
	parser := export.New(export.Config{
		Path:   cfg.ExportPath(),
		Format: cfg.Export.Format,
	})

	if _, err := os.Stat(cfg.ExportPath()); err != nil {
		logger.Warn(ctx, "Statement file not found yet - dashboard will serve empty data",
			"path", cfg.ExportPath())
	}

	return exportobs.Wrap(parser)
}

func initializeFetcher(ctx context.Context, cfg *store.Config) interfaces.StatementFetcher {
	fetcher := export.NewFetcher(cfg.Export.SourceURL, cfg.ExportPath(), cfg.Export.MaxFetchBytes)
	if fetcher.Enabled() {
		logger.Info(ctx, "Statement refresh enabled", "url", cfg.Export.SourceURL)
	}
	return fetcher
}
