package exportobs

import (
	"context"
	"time"

	"trading-tools/internal/interfaces"
	"trading-tools/internal/logger"
	"trading-tools/internal/trace"
	"trading-tools/internal/types"
)

type observableSource struct {
	source interfaces.RecordSource
}

var _ interfaces.RecordSource = (*observableSource)(nil)

func Wrap(source interfaces.RecordSource) interfaces.RecordSource {
	return &observableSource{source: source}
}

func (os *observableSource) ParseFile(ctx context.Context) []types.Record {
	ctx, span := trace.StartSpan(ctx, "export.ParseFile")
	defer span.End()

	start := time.Now()
	records := os.source.ParseFile(ctx)

	logger.Debug(ctx, "Statement parse completed",
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return records
}
