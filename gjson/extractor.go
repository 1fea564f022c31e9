// Package gjson locates items in raw API payloads using tidwall/gjson.
//
// A comments payload is an ordered pair: part 0 is the thread listing and
// part 1 the comment listing. Each listing keeps its entries under
// data.children as {kind, data} objects, and a comment's replies live at
// data.replies.data.children when the API sends them. Only one node of the
// tree is ever needed, so the payload is queried by path instead of being
// decoded in full.
package gjson

import (
	"encoding/json"

	"github.com/fwojciec/rpeek"
	"github.com/tidwall/gjson"
)

// Ensure Extractor implements rpeek.Extractor at compile time.
var _ rpeek.Extractor = (*Extractor)(nil)

const (
	listingPath = "0.data.children.0.data"
	topPath     = "1.data.children"
	repliesPath = "1.data.children.0.data.replies.data.children"
)

// Extractor implements rpeek.Extractor. It never returns an error for a
// payload it cannot make sense of; it reports the item as absent instead.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the item params point at.
//
// Depth 1 requests index the top-level comment list. Depth 2 requests are
// scoped to one parent, which the API returns as the only top-level entry;
// the index applies to that parent's replies. The API sometimes announces
// replies and then sends none, so a missing replies list is reported as
// absence like any other short list.
func (e *Extractor) Extract(payload []byte, params rpeek.RequestParams) *rpeek.ExtractedItem {
	if !gjson.ValidBytes(payload) {
		return nil
	}

	var path string
	switch params.Depth {
	case rpeek.DepthTopLevel:
		path = topPath
	case rpeek.DepthReply:
		path = repliesPath
	default:
		return nil
	}

	list := gjson.GetBytes(payload, path)
	if !list.IsArray() {
		return nil
	}

	idx := params.Index()
	entries := list.Array()
	if idx < 0 || idx >= len(entries) {
		return nil
	}

	entry := entries[idx]
	data := entry.Get("data")
	if !entry.IsObject() || !data.IsObject() {
		return nil
	}

	return &rpeek.ExtractedItem{
		Kind:          rpeek.ItemKind(entry.Get("kind").String()),
		JSON:          json.RawMessage(data.Raw),
		IsLastSibling: idx+1 >= len(entries),
	}
}

// ExtractListing returns the thread metadata from part 0 of the payload.
func (e *Extractor) ExtractListing(payload []byte) *rpeek.Listing {
	data := gjson.GetBytes(payload, listingPath)
	if !data.IsObject() {
		return nil
	}

	var l rpeek.Listing
	if err := json.Unmarshal([]byte(data.Raw), &l); err != nil {
		return nil
	}
	return &l
}
