// Package prefetch implements rpeek.BatchFetcher by fetching more items than
// requested and answering later requests from the cached batch.
package prefetch

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/rpeek"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBatchSize is how many items past the requested one a batch holds.
	DefaultBatchSize = 10

	// DefaultLookAhead is how close to the end of a batch a request may get
	// before the next batch is fetched in the background.
	DefaultLookAhead = 3

	// DefaultBackgroundTimeout bounds a background refetch.
	DefaultBackgroundTimeout = 10 * time.Second
)

// Ensure Prefetcher implements rpeek.BatchFetcher at compile time.
var _ rpeek.BatchFetcher = (*Prefetcher)(nil)

// Prefetcher caches the latest batch per stream. Batches only grow: a
// completed fetch replaces the cached batch only if its limit is not lower.
type Prefetcher struct {
	transport rpeek.Transport
	batchSize int
	lookAhead int
	bgTimeout time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	batches map[string]rpeek.CachedBatch
	closed  bool

	group  singleflight.Group
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Prefetcher.
type Option func(*Prefetcher)

// WithBatchSize sets how many extra items each fetch asks for.
func WithBatchSize(n int) Option {
	return func(p *Prefetcher) {
		p.batchSize = n
	}
}

// WithLookAhead sets the near-exhaustion threshold.
func WithLookAhead(n int) Option {
	return func(p *Prefetcher) {
		p.lookAhead = n
	}
}

// WithBackgroundTimeout bounds background refetches.
func WithBackgroundTimeout(d time.Duration) Option {
	return func(p *Prefetcher) {
		p.bgTimeout = d
	}
}

// WithLogger sets the logger for background failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prefetcher) {
		p.logger = logger
	}
}

// NewPrefetcher creates a Prefetcher on top of transport.
func NewPrefetcher(transport rpeek.Transport, opts ...Option) *Prefetcher {
	p := &Prefetcher{
		transport: transport,
		batchSize: DefaultBatchSize,
		lookAhead: DefaultLookAhead,
		bgTimeout: DefaultBackgroundTimeout,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		batches:   make(map[string]rpeek.CachedBatch),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Fetch returns a payload that contains the item req.Params points at, if
// the stream has one.
func (p *Prefetcher) Fetch(ctx context.Context, req rpeek.BatchRequest) ([]byte, error) {
	cached, ok := p.Batch(req.Key)
	if req.Refresh || !ok || req.Params.Limit >= cached.Params.Limit {
		return p.fetch(ctx, req)
	}

	if req.Params.Limit >= cached.Params.Limit-p.lookAhead {
		p.refetch(req)
	}
	return cached.Payload, nil
}

// Batch returns the cached batch for key.
func (p *Prefetcher) Batch(key rpeek.ThreadKey) (rpeek.CachedBatch, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.batches[key.String()]
	return b, ok
}

func (p *Prefetcher) fetch(ctx context.Context, req rpeek.BatchRequest) ([]byte, error) {
	params := req.Params.Clone()
	params.Limit += p.batchSize

	url := req.URL
	if url == "" {
		url = req.Key.JSONPath()
	}

	body, err := p.transport.Do(ctx, &rpeek.Request{
		URL:     url,
		Data:    params.Values(),
		Timeout: req.Timeout,
	})
	if err != nil {
		return nil, err
	}

	p.store(req.Key, rpeek.CachedBatch{Payload: body, Params: params})
	return body, nil
}

func (p *Prefetcher) store(key rpeek.ThreadKey, batch rpeek.CachedBatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k := key.String()
	if prev, ok := p.batches[k]; ok && prev.Params.Limit > batch.Params.Limit {
		return
	}
	p.batches[k] = batch
}

// refetch loads the next batch without blocking the caller. Concurrent
// refetches of one stream share a single request.
func (p *Prefetcher) refetch(req rpeek.BatchRequest) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	req.Refresh = false
	k := req.Key.String()
	go func() {
		defer p.wg.Done()
		_, err, _ := p.group.Do(k, func() (any, error) {
			ctx, cancel := context.WithTimeout(p.ctx, p.bgTimeout)
			defer cancel()
			return p.fetch(ctx, req)
		})
		if err != nil {
			p.logger.Warn("background prefetch failed", "key", k, "err", err)
		}
	}()
}

// Wait blocks until in-flight background refetches finish.
func (p *Prefetcher) Wait() {
	p.wg.Wait()
}

// Close cancels background refetches and waits for them to return.
func (p *Prefetcher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	p.wg.Wait()
	return nil
}
