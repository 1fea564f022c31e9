// Package http provides the HTTP implementation of rpeek.Transport and the
// session lookup built on top of it.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/rpeek"
	"github.com/sony/gobreaker"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the API host relative request URLs resolve against.
	DefaultBaseURL = "https://www.reddit.com"

	// DefaultTimeout applies to requests that do not carry their own.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "rpeek/0.1 (thread preview client)"

	// DefaultRPS and DefaultBurst bound request pacing.
	DefaultRPS   = 2.0
	DefaultBurst = 4

	// DefaultBreakerThreshold is the number of consecutive upstream
	// failures that opens the circuit.
	DefaultBreakerThreshold = 5

	// SessionCookie is the cookie that carries a logged-in session.
	SessionCookie = "reddit_session"
)

// Ensure Transport implements rpeek.Transport at compile time.
var _ rpeek.Transport = (*Transport)(nil)

// Transport performs API calls over HTTP. Requests are paced by a token
// bucket and short-circuited while the upstream keeps failing. Nothing is
// retried.
type Transport struct {
	client    *http.Client
	baseURL   *url.URL
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker

	rps       float64
	burst     int
	threshold uint32
	session   string
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the timeout for requests that do not specify one.
// Defaults to DefaultTimeout (10s).
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

// WithBaseURL sets the host relative request URLs resolve against.
// Invalid URLs are ignored.
func WithBaseURL(raw string) Option {
	return func(t *Transport) {
		if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
			t.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// WithRateLimit sets the sustained request rate and burst.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(t *Transport) {
		t.rps = rps
		t.burst = burst
	}
}

// WithBreakerThreshold sets how many consecutive upstream failures open the
// circuit.
func WithBreakerThreshold(n uint32) Option {
	return func(t *Transport) {
		t.threshold = n
	}
}

// WithSession injects a session cookie for the base URL.
func WithSession(value string) Option {
	return func(t *Transport) {
		t.session = value
	}
}

// WithHTTPClient replaces the underlying client. Its cookie jar is replaced
// when nil.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// NewTransport creates a new Transport.
func NewTransport(opts ...Option) *Transport {
	base, _ := url.Parse(DefaultBaseURL)
	t := &Transport{
		baseURL:   base,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		rps:       DefaultRPS,
		burst:     DefaultBurst,
		threshold: DefaultBreakerThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}

	// Relative references keep any path prefix of the base.
	if !strings.HasSuffix(t.baseURL.Path, "/") {
		t.baseURL.Path += "/"
	}

	if t.client == nil {
		t.client = &http.Client{}
	}
	if t.client.Jar == nil {
		// cookiejar.New never fails.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		t.client.Jar = jar
	}
	if t.session != "" {
		t.client.Jar.SetCookies(t.baseURL, []*http.Cookie{{
			Name:  SessionCookie,
			Value: t.session,
			Path:  "/",
		}})
	}

	if t.rps > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(t.rps), max(t.burst, 1))
	}

	threshold := max(t.threshold, 1)
	t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "rpeek-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only upstream trouble counts against the circuit.
		IsSuccessful: func(err error) bool {
			return rpeek.ErrorCode(err) != rpeek.EUNAVAILABLE
		},
	})

	return t
}

// Do performs req and returns the response body, which is guaranteed to be
// valid JSON.
func (t *Transport) Do(ctx context.Context, req *rpeek.Request) ([]byte, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = t.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, contextError(ctx, err)
		}
	}

	body, err := t.breaker.Execute(func() (any, error) {
		return t.do(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, rpeek.Errorf(rpeek.EUNAVAILABLE, "upstream unavailable: %v", err)
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (t *Transport) do(ctx context.Context, req *rpeek.Request) ([]byte, error) {
	u, err := t.resolve(req.URL)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if method == http.MethodGet {
		if len(req.Data) > 0 {
			u.RawQuery = req.Data.Encode()
		}
	} else {
		body = strings.NewReader(req.Data.Encode())
	}

	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, rpeek.Errorf(rpeek.EINVALID, "invalid request: %v", err)
	}
	hreq.Header.Set("User-Agent", t.userAgent)
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := t.client.Do(hreq)
	if err != nil {
		return nil, contextError(ctx, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, u); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, contextError(ctx, err)
	}
	if !json.Valid(bytes.TrimSpace(data)) {
		return nil, rpeek.Errorf(rpeek.EINVALID, "response from %s is not JSON", u.Path)
	}
	return data, nil
}

func (t *Transport) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, rpeek.Errorf(rpeek.EINVALID, "invalid url %q", raw)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	return t.baseURL.ResolveReference(ref), nil
}

func statusError(code int, u *url.URL) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return rpeek.Errorf(rpeek.EUNAUTHORIZED, "HTTP %d for %s", code, u.Path)
	case code == http.StatusNotFound:
		return rpeek.Errorf(rpeek.ENOTFOUND, "HTTP %d for %s", code, u.Path)
	default:
		return rpeek.Errorf(rpeek.EUNAVAILABLE, "HTTP %d for %s", code, u.Path)
	}
}

// contextError classifies a failed call. A caller that went away gets
// ECANCELED; a deadline or network failure is EUNAVAILABLE.
func contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return rpeek.Errorf(rpeek.ECANCELED, "request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return rpeek.Errorf(rpeek.EUNAVAILABLE, "request timed out")
	}
	return rpeek.Errorf(rpeek.EUNAVAILABLE, "request failed: %v", err)
}

// Close releases idle connections.
func (t *Transport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
