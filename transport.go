package rpeek

import (
	"context"
	"net/url"
	"time"
)

// Request describes one API call. Data is sent as the query string for
// reads and as a form body for writes.
type Request struct {
	URL     string // Absolute, or relative to the transport's base URL.
	Method  string // Defaults to GET.
	Data    url.Values
	Timeout time.Duration
}

// Transport performs API calls and returns the raw JSON body.
// Implementations reject non-2xx responses and timeouts with EUNAVAILABLE.
type Transport interface {
	Do(ctx context.Context, req *Request) ([]byte, error)
}
