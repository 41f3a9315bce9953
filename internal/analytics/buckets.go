package analytics

import (
	"fmt"
	"sort"
	"time"

	"trading-tools/internal/types"
)

// Bucketize groups records into calendar buckets of the given granularity
// and aggregates each bucket. Unknown granularities fall back to monthly.
// Records without a resolvable date count toward the ungrouped totals but
// join no bucket. Buckets come back in chronological order.
//
// Balance entries participate with their signed amount as the
// profit-equivalent value and zero volume, so ledger-only periods still
// show up in the periodic view.
func (a *Analyzer) Bucketize(records []types.Record, granularity types.Granularity) types.BucketedResult {
	g := normalizeGranularity(granularity)
	result := types.BucketedResult{
		Granularity: g,
		Results:     []types.PeriodBucket{},
	}
	if len(records) == 0 {
		return result
	}

	buckets := map[time.Time]*types.PeriodBucket{}
	for _, r := range records {
		profit, volume := recordValues(r)
		result.TotalProfit += profit
		result.TotalVolume += volume
		result.TotalTrades++

		at := r.RelevantAt()
		if at.IsZero() {
			continue
		}
		start, label := bucketOf(at, g)
		b := buckets[start]
		if b == nil {
			b = &types.PeriodBucket{Label: label}
			buckets[start] = b
		}
		b.Profit += profit
		b.Volume += volume
		b.Trades++
		if profit > 0 {
			b.Wins++
		} else if profit < 0 {
			b.Losses++
		}
	}

	starts := make([]time.Time, 0, len(buckets))
	for s := range buckets {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for _, s := range starts {
		result.Results = append(result.Results, *buckets[s])
	}
	return result
}

func normalizeGranularity(g types.Granularity) types.Granularity {
	switch g {
	case types.Yearly, types.Monthly, types.Weekly, types.Daily:
		return g
	default:
		return types.Monthly
	}
}

func recordValues(r types.Record) (profit, volume float64) {
	switch rec := r.(type) {
	case types.TradeRecord:
		return rec.Profit, rec.Size
	case types.BalanceRecord:
		return rec.Amount, 0
	}
	return 0, 0
}

// bucketOf maps an instant to the start of its calendar bucket and the
// bucket's display label. Weekly buckets follow ISO weeks.
func bucketOf(t time.Time, g types.Granularity) (time.Time, string) {
	switch g {
	case types.Yearly:
		start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		return start, fmt.Sprintf("%d", t.Year())
	case types.Weekly:
		start := startOfISOWeek(t)
		year, week := t.ISOWeek()
		return start, fmt.Sprintf("%d-W%02d", year, week)
	case types.Daily:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return start, start.Format("2006-01-02")
	default: // monthly
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.Format("2006-01")
	}
}

func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
