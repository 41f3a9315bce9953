package analytics

import (
	"math"
	"strings"
	"time"

	"trading-tools/internal/types"
)

// DefaultFeeMarker is the description substring that classifies a negative
// balance entry as an administrative fee rather than a withdrawal. It is
// broker wording, so it stays configurable.
const DefaultFeeMarker = "Administration Fee"

const dateLabelLayout = "2006.01.02"

// Analyzer computes aggregate statistics over record sequences. It holds
// only classification configuration, so one Analyzer is safe to share
// across concurrent requests.
type Analyzer struct {
	feeMarker string
}

func NewAnalyzer(feeMarker string) *Analyzer {
	if feeMarker == "" {
		feeMarker = DefaultFeeMarker
	}
	return &Analyzer{feeMarker: feeMarker}
}

// Summarize filters records to the given window and reduces them to a
// single statistics object. Empty input yields the zero-valued object,
// including a 0 win rate.
func (a *Analyzer) Summarize(records []types.Record, from, to time.Time) types.SummaryStatistics {
	stats := types.SummaryStatistics{Period: periodLabels(from, to)}

	filtered := FilterByRange(records, from, to)
	if len(filtered) == 0 {
		return stats
	}

	var pnl, volume, commissions, deposits, withdrawals, adminFees float64
	for _, r := range filtered {
		switch rec := r.(type) {
		case types.TradeRecord:
			stats.TradeCount++
			pnl += rec.Profit
			volume += rec.Size
			commissions += rec.Commission
			if rec.Profit > 0 {
				stats.WinningTrades++
			} else if rec.Profit < 0 {
				stats.LosingTrades++
			}
		case types.BalanceRecord:
			stats.BalanceTransactions++
			isFee := strings.Contains(rec.Description, a.feeMarker)
			switch {
			case isFee && rec.Amount < 0:
				adminFees += -rec.Amount
			case !isFee && rec.Amount > 0:
				deposits += rec.Amount
			case !isFee && rec.Amount < 0:
				withdrawals += -rec.Amount
			}
		}
	}

	if stats.TradeCount > 0 {
		stats.WinRate = round2(float64(stats.WinningTrades) / float64(stats.TradeCount) * 100)
	}
	stats.TotalPnL = round2(pnl)
	stats.TotalVolume = round2(volume)
	stats.TradeCommissions = round2(commissions)
	stats.AdminFees = round2(adminFees)
	stats.TotalDeposits = round2(deposits)
	stats.TotalWithdrawals = round2(withdrawals)
	stats.TotalFees = round2(commissions + adminFees)
	return stats
}

func periodLabels(from, to time.Time) types.Period {
	p := types.Period{FromDate: "All", ToDate: "All"}
	if !from.IsZero() {
		p.FromDate = from.Format(dateLabelLayout)
	}
	if !to.IsZero() {
		p.ToDate = to.Format(dateLabelLayout)
	}
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
