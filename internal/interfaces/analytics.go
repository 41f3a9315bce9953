package interfaces

import (
	"time"

	"trading-tools/internal/types"
)

// Summarizer reduces record sequences into aggregate views.
type Summarizer interface {
	Summarize(records []types.Record, from, to time.Time) types.SummaryStatistics
	Bucketize(records []types.Record, granularity types.Granularity) types.BucketedResult
}
