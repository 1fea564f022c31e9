package mock

import "github.com/fwojciec/rpeek"

var _ rpeek.CursorStore = (*CursorStore)(nil)

// CursorStore is a mock implementation of rpeek.CursorStore.
type CursorStore struct {
	NextParamsFn   func(key rpeek.ThreadKey) rpeek.RequestParams
	UpdateParamsFn func(key rpeek.ThreadKey, params rpeek.RequestParams) bool
	RewindFn       func(key rpeek.ThreadKey)
	ResetFn        func(key rpeek.ThreadKey)
}

func (s *CursorStore) NextParams(key rpeek.ThreadKey) rpeek.RequestParams {
	return s.NextParamsFn(key)
}

func (s *CursorStore) UpdateParams(key rpeek.ThreadKey, params rpeek.RequestParams) bool {
	return s.UpdateParamsFn(key, params)
}

func (s *CursorStore) Rewind(key rpeek.ThreadKey) {
	s.RewindFn(key)
}

func (s *CursorStore) Reset(key rpeek.ThreadKey) {
	s.ResetFn(key)
}

var _ rpeek.RenderCache = (*RenderCache)(nil)

// RenderCache is a mock implementation of rpeek.RenderCache.
type RenderCache struct {
	GetFn func(url string) (rpeek.RenderEntry, bool)
	SetFn func(url string, entry rpeek.RenderEntry) (rpeek.RenderEntry, bool)
}

func (c *RenderCache) Get(url string) (rpeek.RenderEntry, bool) {
	return c.GetFn(url)
}

func (c *RenderCache) Set(url string, entry rpeek.RenderEntry) (rpeek.RenderEntry, bool) {
	return c.SetFn(url, entry)
}

var _ rpeek.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of rpeek.Renderer.
type Renderer struct {
	RenderFn func(c *rpeek.Comment, l *rpeek.Listing) (string, error)
}

func (r *Renderer) Render(c *rpeek.Comment, l *rpeek.Listing) (string, error) {
	return r.RenderFn(c, l)
}

var _ rpeek.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of rpeek.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]rpeek.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]rpeek.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}
