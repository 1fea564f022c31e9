package rpeek

import (
	"net/url"
	"strconv"
	"strings"
)

// ThreadKey identifies one pagination stream: a canonical thread path plus
// an optional node (comment) id. Requests with the same key share cursor
// state and batch cache.
type ThreadKey struct {
	URL    string
	NodeID string
}

// NewThreadKey canonicalizes rawURL and returns the key for the stream.
func NewThreadKey(rawURL, nodeID string) ThreadKey {
	return ThreadKey{URL: CanonicalURL(rawURL), NodeID: nodeID}
}

// String returns the key in its flat form, the URL followed by the node id.
func (k ThreadKey) String() string {
	return k.URL + k.NodeID
}

// JSONPath returns the API path for the thread.
func (k ThreadKey) JSONPath() string {
	return k.URL + ".json"
}

// CanonicalURL reduces a thread URL to the path the API is keyed on.
// Scheme, host, query and fragment are dropped, the path is sliced from the
// first "/r/" segment when present, and trailing "/" and ".json" are
// removed. Tracking parameters therefore never split a stream.
func CanonicalURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if u, err := url.Parse(s); err == nil {
		s = u.Path
	} else if i := strings.IndexAny(s, "?#"); i != -1 {
		s = s[:i]
	}
	if i := strings.Index(s, "/r/"); i != -1 {
		s = s[i:]
	}
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".json")
	return strings.TrimSuffix(s, "/")
}

// Sort is the comment ordering requested from the API.
type Sort string

// Sort values accepted by the API. Best ordering is called confidence on
// the wire.
const (
	SortTop           Sort = "top"
	SortBest          Sort = "confidence"
	SortNew           Sort = "new"
	SortOld           Sort = "old"
	SortControversial Sort = "controversial"
	SortQA            Sort = "qa"
)

// Valid reports whether s is a known sort order.
func (s Sort) Valid() bool {
	switch s {
	case SortTop, SortBest, SortNew, SortOld, SortControversial, SortQA:
		return true
	}
	return false
}

// Request depths. DepthThread is used by post previews, which only need the
// thread listing itself.
const (
	DepthThread   = 0
	DepthTopLevel = 1
	DepthReply    = 2
)

// RequestParams are the pagination parameters of one request.
type RequestParams struct {
	Depth int

	// Limit is the exclusive upper bound of items the API returns.
	Limit int
	Sort  Sort

	// CommentIndex pins an explicit position and overrides Limit-1.
	// It is client-side only and never sent to the API.
	CommentIndex *int
	NodeID       string
}

// Clone returns a deep copy of p.
func (p RequestParams) Clone() RequestParams {
	if p.CommentIndex != nil {
		i := *p.CommentIndex
		p.CommentIndex = &i
	}
	return p
}

// SetCommentIndex pins the target position.
func (p *RequestParams) SetCommentIndex(i int) {
	p.CommentIndex = &i
}

// Index returns the target position within the resolved item list.
func (p RequestParams) Index() int {
	if p.CommentIndex != nil {
		return *p.CommentIndex
	}
	return p.Limit - 1
}

// Values encodes the parameters as API query values.
func (p RequestParams) Values() url.Values {
	v := url.Values{}
	v.Set("depth", strconv.Itoa(p.Depth))
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.Sort != "" {
		v.Set("sort", string(p.Sort))
	}
	if p.NodeID != "" {
		v.Set("comment", p.NodeID)
	}
	return v
}
