package preview

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/rpeek"
)

// postNode is the node id post previews are cached under.
const postNode = "post_content"

// Ensure PostPreviewer implements rpeek.PostService at compile time.
var _ rpeek.PostService = (*PostPreviewer)(nil)

// PostPreviewer loads the body of a thread's post for the share preview.
// Results are kept for the lifetime of the previewer.
type PostPreviewer struct {
	transport rpeek.Transport
	extractor rpeek.Extractor
	timeout   time.Duration

	mu    sync.Mutex
	posts map[rpeek.ThreadKey]*rpeek.Post
}

// NewPostPreviewer creates a PostPreviewer.
func NewPostPreviewer(transport rpeek.Transport, extractor rpeek.Extractor) *PostPreviewer {
	return &PostPreviewer{
		transport: transport,
		extractor: extractor,
		timeout:   DefaultTimeout,
		posts:     make(map[rpeek.ThreadKey]*rpeek.Post),
	}
}

// Post returns the post of the thread at threadURL.
func (p *PostPreviewer) Post(ctx context.Context, threadURL string) (*rpeek.Post, error) {
	key := rpeek.NewThreadKey(threadURL, postNode)

	p.mu.Lock()
	post, ok := p.posts[key]
	p.mu.Unlock()
	if ok {
		return post, nil
	}

	params := rpeek.RequestParams{Depth: rpeek.DepthThread, Limit: 1, Sort: rpeek.SortTop}
	body, err := p.transport.Do(ctx, &rpeek.Request{
		URL:     key.JSONPath(),
		Data:    params.Values(),
		Timeout: p.timeout,
	})
	if err != nil {
		return nil, err
	}

	post, err = p.extractor.ExtractPost(body)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.posts[key] = post
	p.mu.Unlock()
	return post, nil
}
