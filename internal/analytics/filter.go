package analytics

import (
	"time"

	"trading-tools/internal/types"
)

// FilterByRange narrows a record sequence to an inclusive calendar window.
// A zero bound is open; with both bounds zero the input is returned
// unchanged. The lower bound is inclusive from start of day, the upper
// bound through 23:59:59 of its calendar date. Records without a
// resolvable date are excluded; relative order is preserved.
func FilterByRange(records []types.Record, from, to time.Time) []types.Record {
	if from.IsZero() && to.IsZero() {
		return records
	}
	if !to.IsZero() {
		to = endOfDay(to)
	}

	filtered := make([]types.Record, 0, len(records))
	for _, r := range records {
		at := r.RelevantAt()
		if at.IsZero() {
			continue
		}
		if !from.IsZero() && at.Before(from) {
			continue
		}
		if !to.IsZero() && at.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
