// Package preview orchestrates hover previews: it drives the cursor store,
// the batch fetcher and the extractor for one "show next item" interaction
// at a time per UI surface.
package preview

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/rpeek"
)

// DefaultTimeout bounds each comment request.
const DefaultTimeout = 4 * time.Second

// Status is the outcome of an interaction that did not fail.
type Status string

// Interaction outcomes.
const (
	// StatusItem means a new item was revealed and appended to the panel.
	StatusItem Status = "item"

	// StatusEnd means the stream has no further items.
	StatusEnd Status = "end"

	// StatusCached means the panel was restored from the render cache.
	StatusCached Status = "cached"
)

// Result describes one completed interaction.
type Result struct {
	InteractionID string
	Status        Status

	// Comment and JSON describe the revealed item. Nil unless Status is
	// StatusItem.
	Comment       *rpeek.Comment
	JSON          json.RawMessage
	IsLastSibling bool

	Listing *rpeek.Listing

	// Content is the whole panel after the interaction and Hash its content
	// hash. A surface only needs redrawing when Hash changes.
	Content string
	Hash    string
}

// Service holds the collaborators shared by all surfaces.
type Service struct {
	Cursors   rpeek.CursorStore
	Fetcher   rpeek.BatchFetcher
	Extractor rpeek.Extractor
	Renders   rpeek.RenderCache
	Renderer  rpeek.Renderer
	Transport rpeek.Transport
	Sessions  rpeek.SessionService
	Timeout   time.Duration
	Logger    *slog.Logger

	mu      sync.Mutex
	session *rpeek.Session
}

// NewSurface returns a surface with no thread open.
func (s *Service) NewSurface() *Surface {
	return &Surface{
		svc:      s,
		listings: make(map[string]*rpeek.Listing),
	}
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Session returns the session context, loading it on first use. A failed
// load is not remembered.
func (s *Service) Session(ctx context.Context) *rpeek.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return s.session
	}
	if s.Sessions == nil {
		return &rpeek.Session{}
	}
	session, err := s.Sessions.Load(ctx)
	if err != nil || session == nil {
		s.logger().Warn("session unavailable", "err", err)
		return &rpeek.Session{}
	}
	s.session = session
	return session
}
