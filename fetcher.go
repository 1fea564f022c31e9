package rpeek

import (
	"context"
	"time"
)

// BatchRequest asks for the page containing the next item of a stream.
type BatchRequest struct {
	Key     ThreadKey
	URL     string
	Params  RequestParams
	Timeout time.Duration

	// Refresh skips the cached batch and always goes to the network.
	Refresh bool
}

// CachedBatch is the most recent payload fetched for a stream together with
// the params it was fetched with.
type CachedBatch struct {
	Payload []byte
	Params  RequestParams
}

// BatchFetcher sits between the orchestrator and the transport.
// Callers ask for one item at a time; implementations may fetch and cache
// a larger batch and answer from it.
type BatchFetcher interface {
	Fetch(ctx context.Context, req BatchRequest) ([]byte, error)
}

// Extractor locates items in raw API payloads.
type Extractor interface {
	// Extract returns the item params point at, or nil if the payload does
	// not contain it. Malformed payloads also yield nil.
	Extract(payload []byte, params RequestParams) *ExtractedItem

	// ExtractListing returns the thread metadata, or nil.
	ExtractListing(payload []byte) *Listing

	// ExtractPost returns the post preview content.
	// Returns ENOTFOUND if the payload does not describe a post.
	ExtractPost(payload []byte) (*Post, error)
}
