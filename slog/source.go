package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Ensure LoggingSourceClient implements newsgrab.SourceClient.
var _ newsgrab.SourceClient = (*LoggingSourceClient)(nil)

// LoggingSourceClient wraps a SourceClient with structured logging.
type LoggingSourceClient struct {
	next   newsgrab.SourceClient
	logger *slog.Logger
}

// NewLoggingSourceClient creates a new LoggingSourceClient.
func NewLoggingSourceClient(next newsgrab.SourceClient, logger *slog.Logger) *LoggingSourceClient {
	return &LoggingSourceClient{next: next, logger: logger}
}

// Source delegates to the wrapped client.
func (c *LoggingSourceClient) Source() newsgrab.Source {
	return c.next.Source()
}

// Search delegates to the wrapped client and logs the outcome.
func (c *LoggingSourceClient) Search(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	begin := time.Now()
	refs, err := c.next.Search(ctx, query, limit)
	if err != nil {
		c.logger.Error("search",
			"source", c.next.Source(),
			"query", query,
			"limit", limit,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	c.logger.Info("search",
		"source", c.next.Source(),
		"query", query,
		"limit", limit,
		"items", len(refs),
		"duration", time.Since(begin),
	)
	return refs, nil
}
