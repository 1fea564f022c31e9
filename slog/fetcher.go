package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rpeek"
)

// Ensure LoggingBatchFetcher implements rpeek.BatchFetcher.
var _ rpeek.BatchFetcher = (*LoggingBatchFetcher)(nil)

// LoggingBatchFetcher wraps a BatchFetcher with logging.
type LoggingBatchFetcher struct {
	next   rpeek.BatchFetcher
	logger *slog.Logger
}

// NewLoggingBatchFetcher creates a new LoggingBatchFetcher.
func NewLoggingBatchFetcher(next rpeek.BatchFetcher, logger *slog.Logger) *LoggingBatchFetcher {
	return &LoggingBatchFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingBatchFetcher) Fetch(ctx context.Context, req rpeek.BatchRequest) (payload []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("batch fetch",
			"key", req.Key.String(),
			"limit", req.Params.Limit,
			"refresh", req.Refresh,
			"bytes", len(payload),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
