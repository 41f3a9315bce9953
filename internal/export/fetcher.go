package export

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/gocolly/colly/v2"

	"trading-tools/internal/logger"
)

const (
	fetchTimeout = 30 * time.Second

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// allowedStatementExts are the export file types the fetcher will pull.
var allowedStatementExts = map[string]bool{
	".htm":  true,
	".html": true,
	"":      true, // terminal endpoints often serve the statement without an extension
}

// Fetcher performs a one-shot download of the broker statement from a
// configured URL into the data directory. It is disabled when no source
// URL is configured; the dashboard then serves whatever file is on disk.
type Fetcher struct {
	sourceURL string
	destPath  string
	maxBytes  int
}

func NewFetcher(sourceURL, destPath string, maxBytes int) *Fetcher {
	return &Fetcher{sourceURL: sourceURL, destPath: destPath, maxBytes: maxBytes}
}

func (f *Fetcher) Enabled() bool { return f.sourceURL != "" }

// Fetch downloads the statement and replaces the on-disk export.
func (f *Fetcher) Fetch(ctx context.Context) error {
	if !f.Enabled() {
		return fmt.Errorf("no statement source URL configured")
	}

	u, err := url.Parse(f.sourceURL)
	if err != nil {
		return fmt.Errorf("invalid statement source URL: %w", err)
	}
	if !allowedStatementExts[path.Ext(u.Path)] {
		return fmt.Errorf("unsupported statement file type %q", path.Ext(u.Path))
	}

	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(fetchTimeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", browserUserAgent)
	})

	var saveErr error
	var saved int
	c.OnResponse(func(r *colly.Response) {
		if f.maxBytes > 0 && len(r.Body) > f.maxBytes {
			saveErr = fmt.Errorf("statement too large: %d bytes (limit %d)", len(r.Body), f.maxBytes)
			return
		}
		saveErr = os.WriteFile(f.destPath, r.Body, 0o644)
		saved = len(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		saveErr = err
	})

	if err := c.Visit(f.sourceURL); err != nil {
		return fmt.Errorf("failed to fetch statement: %w", err)
	}
	c.Wait()

	if saveErr != nil {
		logger.ErrorWithErr(ctx, "Statement download failed", saveErr, "url", f.sourceURL)
		return saveErr
	}

	logger.Info(ctx, "Statement downloaded", "url", f.sourceURL, "path", f.destPath, "bytes", saved)
	return nil
}
