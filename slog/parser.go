// Package slog provides logging decorators for shelfread services.
package slog

import (
	"log/slog"
	"time"

	"shelfread"
)

// Ensure LoggingParser implements shelfread.ShelfParser.
var _ shelfread.ShelfParser = (*LoggingParser)(nil)

// LoggingParser wraps a ShelfParser and emits one warning per rejected
// row plus a summary per page. Rejections stay non-fatal; the decorator
// only reports them.
type LoggingParser struct {
	next   shelfread.ShelfParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next shelfread.ShelfParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseShelf delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) ParseShelf(html string) (*shelfread.ParseResult, error) {
	begin := time.Now()
	result, err := p.next.ParseShelf(html)
	if err != nil {
		p.logger.Error("shelf parse failed", "error", err)
		return nil, err
	}

	for _, rejected := range result.Rejected {
		p.logger.Warn("review row dropped",
			"row", rejected.RowID,
			"reason", shelfread.ErrorMessage(rejected.Err),
		)
	}
	p.logger.Info("shelf parsed",
		"books", len(result.Books),
		"rejected", len(result.Rejected),
		"duration", time.Since(begin),
	)
	return result, nil
}
