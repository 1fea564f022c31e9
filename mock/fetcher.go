package mock

import (
	"context"

	"github.com/fwojciec/rpeek"
)

var _ rpeek.BatchFetcher = (*BatchFetcher)(nil)

// BatchFetcher is a mock implementation of rpeek.BatchFetcher.
type BatchFetcher struct {
	FetchFn func(ctx context.Context, req rpeek.BatchRequest) ([]byte, error)
}

func (f *BatchFetcher) Fetch(ctx context.Context, req rpeek.BatchRequest) ([]byte, error) {
	return f.FetchFn(ctx, req)
}

var _ rpeek.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of rpeek.Extractor.
type Extractor struct {
	ExtractFn        func(payload []byte, params rpeek.RequestParams) *rpeek.ExtractedItem
	ExtractListingFn func(payload []byte) *rpeek.Listing
	ExtractPostFn    func(payload []byte) (*rpeek.Post, error)
}

func (e *Extractor) Extract(payload []byte, params rpeek.RequestParams) *rpeek.ExtractedItem {
	return e.ExtractFn(payload, params)
}

func (e *Extractor) ExtractListing(payload []byte) *rpeek.Listing {
	return e.ExtractListingFn(payload)
}

func (e *Extractor) ExtractPost(payload []byte) (*rpeek.Post, error) {
	return e.ExtractPostFn(payload)
}
