package interfaces

import (
	"context"

	"trading-tools/internal/types"
)

// RecordSource produces the transaction records of the configured broker
// statement. Implementations surface problems as diagnostics and an empty
// (or partial) slice, never as an error.
type RecordSource interface {
	ParseFile(ctx context.Context) []types.Record
}

// StatementFetcher refreshes the on-disk statement from the broker terminal.
type StatementFetcher interface {
	Enabled() bool
	Fetch(ctx context.Context) error
}
