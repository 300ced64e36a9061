// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/seaward/citetrack"
)

// NewLogger returns a text logger writing to every given writer, so a
// run can log to stderr and a scrape log file at once.
func NewLogger(level slog.Level, outs ...io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(io.MultiWriter(outs...), &slog.HandlerOptions{Level: level}))
}

// Ensure LoggingFetcher implements citetrack.Fetcher.
var _ citetrack.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of each request.
type LoggingFetcher struct {
	next   citetrack.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next citetrack.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
