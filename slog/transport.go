// Package slog provides logging decorators for rpeek services.
package slog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/rpeek"
)

// Ensure LoggingTransport implements rpeek.Transport.
var _ rpeek.Transport = (*LoggingTransport)(nil)

// LoggingTransport wraps a Transport with request logging.
type LoggingTransport struct {
	next   rpeek.Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a new LoggingTransport.
func NewLoggingTransport(next rpeek.Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Do delegates to the wrapped transport and logs the call.
func (t *LoggingTransport) Do(ctx context.Context, req *rpeek.Request) (body []byte, err error) {
	defer func(begin time.Time) {
		method := req.Method
		if method == "" {
			method = http.MethodGet
		}
		t.logger.Debug("api request",
			"method", method,
			"url", req.URL,
			"limit", req.Data.Get("limit"),
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Do(ctx, req)
}
