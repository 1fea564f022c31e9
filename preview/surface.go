package preview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fwojciec/rpeek"
	"github.com/google/uuid"
)

// Surface is one preview popup. It runs at most one interaction at a time:
// Open supersedes whatever is in flight, Next is refused while busy.
//
// Every interaction is tagged with a generation. A result whose generation
// is no longer current is discarded without touching the cursor store, the
// render cache or the panel.
type Surface struct {
	svc *Service

	mu       sync.Mutex
	gen      uint64
	busy     bool
	cancel   context.CancelFunc
	url      string
	itemID   string
	content  string
	hash     string
	listing  *rpeek.Listing
	listings map[string]*rpeek.Listing
}

// interaction is the state captured when an interaction starts.
type interaction struct {
	id  string
	gen uint64
	url string
	key rpeek.ThreadKey
}

// Open starts a preview of the thread at threadURL. A render-cache hit
// restores the panel without any request.
func (s *Surface) Open(ctx context.Context, threadURL string) (*Result, error) {
	if rpeek.CanonicalURL(threadURL) == "" {
		return nil, rpeek.Errorf(rpeek.EINVALID, "invalid thread url %q", threadURL)
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.url = threadURL
	s.itemID = ""
	s.content = ""
	s.hash = ""
	s.listing = nil

	id := uuid.NewString()
	key := rpeek.NewThreadKey(threadURL, "")
	if entry, ok := s.svc.Renders.Get(threadURL); ok {
		s.busy = false
		s.itemID = entry.ItemID
		s.content = entry.Content
		s.hash = entry.Hash
		s.listing = s.listings[entry.ItemID]
		res := &Result{
			InteractionID: id,
			Status:        StatusCached,
			Listing:       s.listing,
			Content:       s.content,
			Hash:          s.hash,
		}
		s.mu.Unlock()
		s.svc.logger().Debug("preview restored", "interaction", id, "url", threadURL)
		return res, nil
	}

	// Nothing was ever shown for this thread, so any stored cursor (left by
	// a retry that failed after widening) would skip items.
	s.svc.Cursors.Reset(key)
	ctx, in := s.begin(ctx, id, key)
	s.mu.Unlock()

	return s.run(ctx, in)
}

// Next reveals the next top-level comment of the open thread, or the next
// reply of nodeID when it is set.
func (s *Surface) Next(ctx context.Context, nodeID string) (*Result, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, rpeek.Errorf(rpeek.ECONFLICT, "a request is already in flight")
	}
	if s.url == "" {
		s.mu.Unlock()
		return nil, rpeek.Errorf(rpeek.EINVALID, "no thread open")
	}
	s.gen++
	ctx, in := s.begin(ctx, uuid.NewString(), rpeek.NewThreadKey(s.url, nodeID))
	s.mu.Unlock()

	return s.run(ctx, in)
}

// Close cancels the in-flight interaction, if any.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.busy = false
}

// Content returns the current panel.
func (s *Surface) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// begin marks the surface busy for a new interaction. Callers hold s.mu and
// have already advanced the generation.
func (s *Surface) begin(ctx context.Context, id string, key rpeek.ThreadKey) (context.Context, interaction) {
	ctx, cancel := context.WithCancel(ctx)
	s.busy = true
	s.cancel = cancel
	return ctx, interaction{id: id, gen: s.gen, url: s.url, key: key}
}

// finish releases the interaction slot if in still owns it.
func (s *Surface) finish(in interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != in.gen {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.busy = false
}

func (s *Surface) current(in interaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == in.gen
}

func superseded(in interaction) error {
	return rpeek.Errorf(rpeek.ECANCELED, "interaction %s superseded", in.id)
}

func (s *Surface) run(ctx context.Context, in interaction) (res *Result, err error) {
	defer s.finish(in)
	logger := s.svc.logger()
	defer func() {
		if err != nil {
			logger.Debug("preview failed", "interaction", in.id, "key", in.key.String(), "err", err)
			return
		}
		logger.Debug("preview", "interaction", in.id, "key", in.key.String(), "status", res.Status)
	}()

	cursors := s.svc.Cursors
	cursors.Rewind(in.key)
	params := cursors.NextParams(in.key)

	payload, err := s.fetch(ctx, in, params, false)
	if err != nil {
		return nil, err
	}
	item := s.svc.Extractor.Extract(payload, params)

	// The API sometimes answers with a "more" placeholder where the item
	// should be. Asking again with a wider limit expands it.
	if item.IsStub() {
		params, err = s.widen(in)
		if err != nil {
			return nil, err
		}

		payload, err = s.fetch(ctx, in, params, true)
		if err != nil {
			return nil, err
		}
		item = s.svc.Extractor.Extract(payload, params)
		if item.IsStub() {
			item = nil
		}
	}

	var c *rpeek.Comment
	if item != nil {
		if c, err = item.Comment(); err != nil {
			logger.Warn("malformed item", "interaction", in.id, "key", in.key.String(), "err", err)
			item, err = nil, nil
		}
	}

	if item == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != in.gen {
			return nil, superseded(in)
		}
		return &Result{
			InteractionID: in.id,
			Status:        StatusEnd,
			Listing:       s.listing,
			Content:       s.content,
			Hash:          s.hash,
		}, nil
	}

	return s.reveal(in, params, payload, item, c)
}

// widen moves the cursor onto the slot the placeholder occupied and one
// further, and persists it before the retry.
func (s *Surface) widen(in interaction) (rpeek.RequestParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != in.gen {
		return rpeek.RequestParams{}, superseded(in)
	}
	params := s.svc.Cursors.NextParams(in.key)
	params.SetCommentIndex(params.Limit - 2)
	params.Limit++
	s.svc.Cursors.UpdateParams(in.key, params)
	return params, nil
}

func (s *Surface) fetch(ctx context.Context, in interaction, params rpeek.RequestParams, refresh bool) ([]byte, error) {
	payload, err := s.svc.Fetcher.Fetch(ctx, rpeek.BatchRequest{
		Key:     in.key,
		URL:     in.key.JSONPath(),
		Params:  params,
		Timeout: s.svc.timeout(),
		Refresh: refresh,
	})
	if err == nil {
		return payload, nil
	}
	if !s.current(in) {
		return nil, superseded(in)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, rpeek.Errorf(rpeek.ECANCELED, "request canceled")
	}
	switch rpeek.ErrorCode(err) {
	case rpeek.ENOTFOUND, rpeek.EUNAUTHORIZED:
		return nil, err
	default:
		return nil, rpeek.Errorf(rpeek.EUNAVAILABLE, "could not load comments: %s", rpeek.ErrorMessage(err))
	}
}

// reveal renders c and commits it to the cursor store, the panel and the
// render cache, unless the interaction has been superseded meanwhile.
func (s *Surface) reveal(in interaction, params rpeek.RequestParams, payload []byte, item *rpeek.ExtractedItem, c *rpeek.Comment) (*Result, error) {
	listing := s.svc.Extractor.ExtractListing(payload)
	if listing == nil {
		s.mu.Lock()
		listing = s.listings[in.key.NodeID]
		s.mu.Unlock()
	}

	rendered, err := s.svc.Renderer.Render(c, listing)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != in.gen {
		return nil, superseded(in)
	}

	s.svc.Cursors.UpdateParams(in.key, params)
	s.listings[c.ID] = listing
	s.listing = listing
	if s.itemID == "" {
		s.itemID = c.ID
	}
	s.content = joinPanel(s.content, rendered)
	entry, changed := s.svc.Renders.Set(in.url, rpeek.RenderEntry{Content: s.content, ItemID: s.itemID})
	if !changed {
		s.svc.logger().Debug("panel unchanged", "interaction", in.id, "url", in.url, "hash", entry.Hash)
	}
	s.hash = entry.Hash

	return &Result{
		InteractionID: in.id,
		Status:        StatusItem,
		Comment:       c,
		JSON:          item.JSON,
		IsLastSibling: item.IsLastSibling,
		Listing:       listing,
		Content:       s.content,
		Hash:          s.hash,
	}, nil
}

func joinPanel(panel, item string) string {
	if panel == "" {
		return item
	}
	return strings.TrimRight(panel, "\n") + "\n\n---\n\n" + item
}
