package types

import "time"

// TradeKind is the direction of a trade row in the export.
type TradeKind string

const (
	KindBuy  TradeKind = "buy"
	KindSell TradeKind = "sell"
)

// Record is the closed set of transaction variants extracted from a broker
// statement. A record is either a TradeRecord or a BalanceRecord; the variant
// is fixed when the row is parsed and records are never mutated afterwards.
type Record interface {
	// RecordTicket returns the broker ticket identifier.
	RecordTicket() string
	// RelevantAt returns the instant used for date filtering and bucketing.
	// The zero time means the row carried no parseable date; such records
	// are excluded from date-based operations, never treated as errors.
	RelevantAt() time.Time

	record()
}

// TradeRecord is a closed buy/sell position from the statement.
// Raw open/close time strings are kept as the broker exported them;
// OpenedAt holds the normalized instant (zero when unparseable).
type TradeRecord struct {
	Ticket     string    `json:"ticket"`
	OpenTime   string    `json:"open_time"`
	Kind       TradeKind `json:"type"`
	Size       float64   `json:"size"`
	Symbol     string    `json:"symbol"`
	OpenPrice  float64   `json:"open_price"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	CloseTime  string    `json:"close_time"`
	ClosePrice float64   `json:"close_price"`
	Commission float64   `json:"commission"`
	Taxes      float64   `json:"taxes"`
	Swap       float64   `json:"swap"`
	Profit     float64   `json:"profit"`

	OpenedAt time.Time `json:"-"`
}

func (t TradeRecord) RecordTicket() string  { return t.Ticket }
func (t TradeRecord) RelevantAt() time.Time { return t.OpenedAt }
func (TradeRecord) record()                 {}

// BalanceRecord is a non-trade ledger event: deposit, withdrawal or an
// administrative fee. Amount is signed, positive for credits.
type BalanceRecord struct {
	Ticket      string  `json:"ticket"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`

	At time.Time `json:"-"`
}

func (b BalanceRecord) RecordTicket() string  { return b.Ticket }
func (b BalanceRecord) RelevantAt() time.Time { return b.At }
func (BalanceRecord) record()                 {}

// Period labels a summary window. Unbounded sides read "All".
type Period struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// SummaryStatistics is the aggregate view over a record sequence.
// Monetary and volume fields are rounded to 2 decimals on the way out;
// accumulation happens at full precision.
type SummaryStatistics struct {
	Period              Period  `json:"period"`
	TotalPnL            float64 `json:"total_pnl"`
	TotalFees           float64 `json:"total_fees"`
	TradeCommissions    float64 `json:"trade_commissions"`
	AdminFees           float64 `json:"admin_fees"`
	TotalDeposits       float64 `json:"total_deposits"`
	TotalWithdrawals    float64 `json:"total_withdrawals"`
	TotalVolume         float64 `json:"total_volume"`
	TradeCount          int     `json:"trade_count"`
	WinningTrades       int     `json:"winning_trades"`
	LosingTrades        int     `json:"losing_trades"`
	WinRate             float64 `json:"win_rate"`
	BalanceTransactions int     `json:"balance_transactions"`
}

// Granularity selects the calendar bucket size for periodic analysis.
type Granularity string

const (
	Yearly  Granularity = "yearly"
	Monthly Granularity = "monthly"
	Weekly  Granularity = "weekly"
	Daily   Granularity = "daily"
)

// PeriodBucket aggregates the records falling into one calendar bucket.
type PeriodBucket struct {
	Label  string  `json:"period"`
	Profit float64 `json:"profit"`
	Volume float64 `json:"volume"`
	Trades int     `json:"trades"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}

// BucketedResult is the bucketizer output: chronological buckets plus
// ungrouped totals over the whole input.
type BucketedResult struct {
	TotalProfit float64        `json:"total_profit"`
	TotalVolume float64        `json:"total_volume"`
	TotalTrades int            `json:"total_trades"`
	Results     []PeriodBucket `json:"results"`
	Granularity Granularity    `json:"period"`
}
