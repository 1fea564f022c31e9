package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_Do(t *testing.T) {
	t.Parallel()

	t.Run("delegates to DoFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *rpeek.Request
		tr := &mock.Transport{
			DoFn: func(_ context.Context, req *rpeek.Request) ([]byte, error) {
				calledWith = req
				return []byte(`{}`), nil
			},
		}

		req := &rpeek.Request{URL: "/api/me.json"}
		body, err := tr.Do(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(body))
		assert.Same(t, req, calledWith)
	})
}
