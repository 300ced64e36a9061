package slog

import (
	"log/slog"
	"time"

	"github.com/seaward/citetrack"
)

// Ensure LoggingURLExtractor implements citetrack.URLExtractor.
var _ citetrack.URLExtractor = (*LoggingURLExtractor)(nil)

// LoggingURLExtractor wraps a URLExtractor with per-document logging.
type LoggingURLExtractor struct {
	next   citetrack.URLExtractor
	logger *slog.Logger
}

// NewLoggingURLExtractor creates a new LoggingURLExtractor.
func NewLoggingURLExtractor(next citetrack.URLExtractor, logger *slog.Logger) *LoggingURLExtractor {
	return &LoggingURLExtractor{next: next, logger: logger}
}

// ExtractURLs delegates to the wrapped extractor and logs the outcome.
func (e *LoggingURLExtractor) ExtractURLs(path string) ([]string, error) {
	begin := time.Now()
	urls, err := e.next.ExtractURLs(path)
	if err != nil {
		e.logger.Error("extract urls",
			"doc", path,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	e.logger.Info("extract urls",
		"doc", path,
		"urls", len(urls),
		"duration", time.Since(begin),
	)
	return urls, nil
}
