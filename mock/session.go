package mock

import (
	"context"

	"github.com/fwojciec/rpeek"
)

var _ rpeek.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of rpeek.SessionService.
type SessionService struct {
	LoadFn func(ctx context.Context) (*rpeek.Session, error)
}

func (s *SessionService) Load(ctx context.Context) (*rpeek.Session, error) {
	return s.LoadFn(ctx)
}

var _ rpeek.PostService = (*PostService)(nil)

// PostService is a mock implementation of rpeek.PostService.
type PostService struct {
	PostFn func(ctx context.Context, threadURL string) (*rpeek.Post, error)
}

func (s *PostService) Post(ctx context.Context, threadURL string) (*rpeek.Post, error) {
	return s.PostFn(ctx, threadURL)
}
