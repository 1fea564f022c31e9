package rpeek

import (
	"context"
	"encoding/json"
	"time"
)

// ItemKind is the API "kind" tag of a listing child.
type ItemKind string

// Listing child kinds used by the preview.
const (
	KindComment ItemKind = "t1"
	KindLink    ItemKind = "t3"
	KindMore    ItemKind = "more"
)

// ExtractedItem is the tree node located for a request.
// A nil *ExtractedItem means the list was shorter than requested.
type ExtractedItem struct {
	Kind          ItemKind
	JSON          json.RawMessage
	IsLastSibling bool
}

// IsStub reports whether the API collapsed the item into a "more" placeholder.
func (i *ExtractedItem) IsStub() bool {
	return i != nil && i.Kind == KindMore
}

// Comment decodes the item data as a comment.
func (i *ExtractedItem) Comment() (*Comment, error) {
	var c Comment
	if err := json.Unmarshal(i.JSON, &c); err != nil {
		return nil, Errorf(EINVALID, "decoding comment: %v", err)
	}
	return &c, nil
}

// Comment is the subset of a t1 thing the preview renders.
type Comment struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	BodyHTML   string  `json:"body_html"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	ParentID   string  `json:"parent_id"`
	Depth      int     `json:"depth"`
	Likes      *bool   `json:"likes"`
	CreatedUTC float64 `json:"created_utc"`
}

// CreatedAt returns the creation time.
func (c *Comment) CreatedAt() time.Time {
	return time.Unix(int64(c.CreatedUTC), 0).UTC()
}

// IsTopLevel reports whether the comment replies to the thread itself.
func (c *Comment) IsTopLevel() bool {
	return len(c.ParentID) > 3 && c.ParentID[:3] == string(KindLink)+"_"
}

// Listing is the thread metadata returned alongside every comment page.
type Listing struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit_name_prefixed"`
	Permalink   string `json:"permalink"`
	URL         string `json:"url"`
	Selftext    string `json:"selftext"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

// Post is the content shown by the share preview.
type Post struct {
	Title     string
	Author    string
	Score     int
	Subreddit string
	Content   string
}

// PostService loads the post of a thread for the share preview.
type PostService interface {
	Post(ctx context.Context, threadURL string) (*Post, error)
}
