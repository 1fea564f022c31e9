package mock

import (
	"context"

	"github.com/fwojciec/rpeek"
)

var _ rpeek.Transport = (*Transport)(nil)

// Transport is a mock implementation of rpeek.Transport.
type Transport struct {
	DoFn func(ctx context.Context, req *rpeek.Request) ([]byte, error)
}

func (t *Transport) Do(ctx context.Context, req *rpeek.Request) ([]byte, error) {
	return t.DoFn(ctx, req)
}
