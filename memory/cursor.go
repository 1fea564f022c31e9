// Package memory provides the page-lifetime stores of rpeek: the pagination
// cursor and the rendered-output cache. Nothing is persisted across
// sessions.
package memory

import (
	"sync"

	"github.com/fwojciec/rpeek"
)

// Compile-time interface verification.
var _ rpeek.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory rpeek.CursorStore.
//
// It tracks two positions per stream: the params last applied through
// UpdateParams, and the params last handed out by NextParams. Reads advance
// the second one only, so a failed or superseded request never moves the
// applied cursor. It is safe for concurrent use by multiple goroutines.
type CursorStore struct {
	mu      sync.Mutex
	applied map[rpeek.ThreadKey]rpeek.RequestParams
	issued  map[rpeek.ThreadKey]rpeek.RequestParams
}

// NewCursorStore creates an empty CursorStore.
func NewCursorStore() *CursorStore {
	return &CursorStore{
		applied: make(map[rpeek.ThreadKey]rpeek.RequestParams),
		issued:  make(map[rpeek.ThreadKey]rpeek.RequestParams),
	}
}

// NextParams returns the params for the next request on key.
// Unknown streams start at depth 1 and limit 0, or depth 2 and limit 1 when
// scoped to a node, sorted by top. Every read returns a limit one past the
// previous read, and advances the comment index too when one is set.
func (s *CursorStore) NextParams(key rpeek.ThreadKey) rpeek.RequestParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.issued[key]
	if !ok {
		p, ok = s.applied[key]
	}
	if !ok {
		p = defaultParams(key)
	}

	p = p.Clone()
	p.Limit++
	if p.CommentIndex != nil {
		*p.CommentIndex++
	}
	s.issued[key] = p
	return p.Clone()
}

// UpdateParams stores a copy of params for key. A completion whose limit is
// behind the applied one is stale and is discarded; the result reports
// whether params were stored.
func (s *CursorStore) UpdateParams(key rpeek.ThreadKey, params rpeek.RequestParams) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.applied[key]; ok && params.Limit < stored.Limit {
		return false
	}
	s.applied[key] = params.Clone()
	s.issued[key] = params.Clone()
	return true
}

// Rewind drops reads that were never applied. The next read starts from the
// applied params again.
func (s *CursorStore) Rewind(key rpeek.ThreadKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.issued, key)
}

// Reset forgets the stream.
func (s *CursorStore) Reset(key rpeek.ThreadKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.applied, key)
	delete(s.issued, key)
}

// Params returns the applied params for key.
func (s *CursorStore) Params(key rpeek.ThreadKey) (rpeek.RequestParams, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.applied[key]
	return p.Clone(), ok
}

func defaultParams(key rpeek.ThreadKey) rpeek.RequestParams {
	if key.NodeID != "" {
		return rpeek.RequestParams{
			Depth:  rpeek.DepthReply,
			Limit:  1,
			Sort:   rpeek.SortTop,
			NodeID: key.NodeID,
		}
	}
	return rpeek.RequestParams{
		Depth: rpeek.DepthTopLevel,
		Limit: 0,
		Sort:  rpeek.SortTop,
	}
}
