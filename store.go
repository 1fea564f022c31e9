package rpeek

// CursorStore persists the last applied RequestParams per stream so that
// consecutive "next" calls advance instead of repeating.
type CursorStore interface {
	// NextParams returns the params for the next request on key. Every read
	// advances Limit (and CommentIndex, when set) by one past the previous
	// read. Reads are not applied: the stored params only change through
	// UpdateParams.
	NextParams(key ThreadKey) RequestParams

	// UpdateParams stores params for key. It returns false and keeps the
	// stored params when params.Limit is behind them.
	UpdateParams(key ThreadKey, params RequestParams) bool

	// Rewind drops reads that were never applied, so the next read starts
	// from the stored params again.
	Rewind(key ThreadKey)

	// Reset forgets the stream.
	Reset(key ThreadKey)
}

// RenderEntry is the rendered panel content cached for a thread.
type RenderEntry struct {
	Content string
	Hash    string

	// ItemID is the id of the first item in the panel.
	ItemID string
}

// RenderCache memoizes rendered panel content per canonical thread URL.
type RenderCache interface {
	Get(url string) (RenderEntry, bool)

	// Set stores entry for url with Hash filled from Content and returns the
	// stored entry. It reports false, leaving the cache as it was, when the
	// cached entry already has the same hash and item.
	Set(url string, entry RenderEntry) (RenderEntry, bool)
}

// Renderer turns an item into display content.
type Renderer interface {
	Render(c *Comment, l *Listing) (string, error)
}

// Link is a hyperlink found in rendered content.
type Link struct {
	URL  string
	Text string
}

// LinkExtractor collects the links in an HTML fragment, resolved against
// baseURL, in document order and without duplicates.
type LinkExtractor interface {
	ExtractLinks(html, baseURL string) ([]Link, error)
}
