package export

import (
	"context"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"trading-tools/internal/logger"
	"trading-tools/internal/types"
)

// Config locates and identifies the statement to parse. It is passed in at
// construction; the parser keeps no ambient path state.
type Config struct {
	// Path of the exported .htm statement on disk.
	Path string
	// Format identifier selecting the row mapper (FormatMT4 by default).
	Format string
}

// Parser extracts transaction records from a broker HTML statement.
// Every parse allocates fresh state, so one Parser is safe to use from
// concurrent requests.
type Parser struct {
	cfg    Config
	mapper RowMapper
}

func New(cfg Config) *Parser {
	return &Parser{cfg: cfg, mapper: mapperFor(cfg.Format)}
}

// ParseFile reads and parses the configured export. A missing file, a
// statement without tables, or a malformed document all yield whatever
// records could be extracted plus a logged diagnostic; ParseFile never
// returns an error to the caller. Individual malformed rows are dropped
// without aborting the parse.
func (p *Parser) ParseFile(ctx context.Context) []types.Record {
	records := []types.Record{}

	f, err := os.Open(p.cfg.Path)
	if err != nil {
		logger.Warn(ctx, "Statement file not readable", "path", p.cfg.Path, "error", err)
		return records
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to parse statement HTML", err, "path", p.cfg.Path)
		return records
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		logger.Warn(ctx, "Statement contains no tables", "path", p.cfg.Path)
		return records
	}

	// Broker exports place account and profile tables before the activity
	// table, so the activity table is the last one.
	rows := tables.Last().Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := cellTexts(row)
		if len(cells) < 2 {
			return
		}
		rec, ok := p.mapper.MapRow(cells)
		if !ok {
			return
		}
		records = append(records, rec)
	})

	logger.Info(ctx, "Statement parsed",
		"path", p.cfg.Path,
		"format", p.mapper.Name(),
		"rows", rows.Length(),
		"records", len(records),
	)
	return records
}

func cellTexts(row *goquery.Selection) []string {
	cells := []string{}
	row.Find("td").Each(func(_ int, c *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(c.Text()))
	})
	return cells
}
