// Command report is the offline twin of the dashboard's /api/summary:
// it parses a statement export and prints the aggregate statistics, and
// optionally the per-period breakdown, without running the server.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"trading-tools/internal/analytics"
	"trading-tools/internal/export"
	"trading-tools/internal/logger"
	"trading-tools/internal/store"
	"trading-tools/internal/types"
)

func main() {
	file := flag.String("file", "", "statement export path (defaults to the configured export)")
	fromArg := flag.String("from", "", "start date, YYYY.MM.DD")
	toArg := flag.String("to", "", "end date, YYYY.MM.DD")
	period := flag.String("period", "", "also print the periodic breakdown: yearly, monthly, weekly or daily")
	asCSV := flag.Bool("csv", false, "print the periodic breakdown as CSV instead of JSON")
	configPath := flag.String("config", "", "optional config file for defaults")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.InitWithConfig(logger.LogConfig{Level: "WARN", Format: "text"}); err != nil {
		log.Fatal(err)
	}

	cfg := store.DefaultConfig()
	if *configPath != "" {
		loaded, err := store.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	path := *file
	if path == "" {
		path = cfg.ExportPath()
	}

	from, to, err := parseWindow(*fromArg, *toArg)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	parser := export.New(export.Config{Path: path, Format: cfg.Export.Format})
	records := parser.ParseFile(ctx)

	analyzer := analytics.NewAnalyzer(cfg.Analytics.FeeMarker)
	summary := analyzer.Summarize(records, from, to)

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))

	if *period == "" {
		return
	}

	result := analyzer.Bucketize(analytics.FilterByRange(records, from, to), types.Granularity(*period))
	if *asCSV {
		if err := writeBucketsCSV(os.Stdout, result); err != nil {
			log.Fatal(err)
		}
		return
	}
	out, err = json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func parseWindow(fromArg, toArg string) (from, to time.Time, err error) {
	if fromArg != "" {
		t, ok := export.ParseDate(fromArg)
		if !ok {
			return from, to, fmt.Errorf("invalid -from %q: expected YYYY.MM.DD", fromArg)
		}
		from = t
	}
	if toArg != "" {
		t, ok := export.ParseDate(toArg)
		if !ok {
			return from, to, fmt.Errorf("invalid -to %q: expected YYYY.MM.DD", toArg)
		}
		to = t
	}
	return from, to, nil
}

func writeBucketsCSV(f *os.File, result types.BucketedResult) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"period", "profit", "volume", "trades", "wins", "losses"}); err != nil {
		return err
	}
	for _, b := range result.Results {
		rec := []string{
			b.Label,
			fmt.Sprintf("%.2f", b.Profit),
			fmt.Sprintf("%.2f", b.Volume),
			strconv.Itoa(b.Trades),
			strconv.Itoa(b.Wins),
			strconv.Itoa(b.Losses),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Write([]string{
		"TOTAL",
		fmt.Sprintf("%.2f", result.TotalProfit),
		fmt.Sprintf("%.2f", result.TotalVolume),
		strconv.Itoa(result.TotalTrades), "", "",
	})
}
