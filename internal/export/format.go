package export

import (
	"strconv"
	"strings"

	"trading-tools/internal/types"
)

// FormatMT4 is the built-in statement layout. Unknown format identifiers
// fall back to it.
const FormatMT4 = "mt4"

// Cell positions of the MT4 activity table. The mapping is positional and
// brittle on purpose: it mirrors the broker's export layout exactly, and it
// lives behind RowMapper so a future broker variant replaces the mapper
// without touching the parser.
const (
	cellTicket     = 0
	cellOpenTime   = 1
	cellType       = 2
	cellSize       = 3
	cellSymbol     = 4
	cellOpenPrice  = 5
	cellStopLoss   = 6
	cellTakeProfit = 7
	cellCloseTime  = 8
	cellClosePrice = 9
	cellCommission = 10
	cellTaxes      = 11
	cellSwap       = 12
	cellProfit     = 13

	cellBalanceDescription = 3

	// Trade rows must carry at least the required columns through close price.
	minTradeCells = 10

	// The type cell of non-trade ledger rows. Matched exactly, lowercase,
	// as the broker writes it.
	balanceTypeLabel = "balance"
)

// RowMapper turns one statement row (trimmed cell texts) into a Record.
// ok is false when the row is not a well-formed record of this format;
// such rows are skipped, never fatal.
type RowMapper interface {
	Name() string
	MapRow(cells []string) (rec types.Record, ok bool)
}

// mapperFor selects the mapper for a format identifier.
func mapperFor(format string) RowMapper {
	switch format {
	case FormatMT4:
		return mt4Mapper{}
	default:
		return mt4Mapper{}
	}
}

type mt4Mapper struct{}

func (mt4Mapper) Name() string { return FormatMT4 }

func (mt4Mapper) MapRow(cells []string) (types.Record, bool) {
	if len(cells) <= cellType {
		return nil, false
	}
	rowType := cells[cellType]
	switch {
	case rowType == balanceTypeLabel:
		return mapBalanceRow(cells)
	case strings.EqualFold(rowType, string(types.KindBuy)),
		strings.EqualFold(rowType, string(types.KindSell)):
		return mapTradeRow(cells)
	}
	return nil, false
}

func mapBalanceRow(cells []string) (types.Record, bool) {
	amount, err := parseAmount(cells[len(cells)-1])
	if err != nil {
		return nil, false
	}
	rec := types.BalanceRecord{
		Ticket: cells[cellTicket],
		Date:   cells[cellOpenTime],
		Amount: amount,
	}
	if len(cells) > cellBalanceDescription {
		rec.Description = cells[cellBalanceDescription]
	}
	rec.At, _ = ParseTimestamp(rec.Date)
	return rec, true
}

func mapTradeRow(cells []string) (types.Record, bool) {
	if len(cells) < minTradeCells {
		return nil, false
	}
	size, err := parseAmount(cells[cellSize])
	if err != nil {
		return nil, false
	}
	openPrice, err := parseAmount(cells[cellOpenPrice])
	if err != nil {
		return nil, false
	}
	rec := types.TradeRecord{
		Ticket:    cells[cellTicket],
		OpenTime:  cells[cellOpenTime],
		Kind:      types.TradeKind(strings.ToLower(cells[cellType])),
		Size:      size,
		Symbol:    cells[cellSymbol],
		OpenPrice: openPrice,
		CloseTime: cells[cellCloseTime],
	}

	// Optional numeric columns default to 0 when the column is absent or
	// empty; a non-empty cell that fails to parse invalidates the row.
	optional := []struct {
		idx  int
		dest *float64
	}{
		{cellStopLoss, &rec.StopLoss},
		{cellTakeProfit, &rec.TakeProfit},
		{cellClosePrice, &rec.ClosePrice},
		{cellCommission, &rec.Commission},
		{cellTaxes, &rec.Taxes},
		{cellSwap, &rec.Swap},
		{cellProfit, &rec.Profit},
	}
	for _, f := range optional {
		v, err := optionalAmount(cells, f.idx)
		if err != nil {
			return nil, false
		}
		*f.dest = v
	}

	rec.OpenedAt, _ = ParseTimestamp(rec.OpenTime)
	return rec, true
}

// parseAmount converts a statement cell to a float, stripping the
// thousands-separator commas the broker inserts.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func optionalAmount(cells []string, idx int) (float64, error) {
	if idx >= len(cells) || cells[idx] == "" {
		return 0, nil
	}
	return parseAmount(cells[idx])
}
