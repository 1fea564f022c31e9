package memory_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorStore_NextParams(t *testing.T) {
	t.Parallel()

	t.Run("top-level stream starts at the first comment", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		p := store.NextParams(rpeek.NewThreadKey("/r/go/comments/abc/t", ""))

		assert.Equal(t, rpeek.DepthTopLevel, p.Depth)
		assert.Equal(t, 1, p.Limit)
		assert.Equal(t, rpeek.SortTop, p.Sort)
		assert.Nil(t, p.CommentIndex)
		assert.Empty(t, p.NodeID)
	})

	t.Run("node-scoped stream starts at depth two", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		p := store.NextParams(rpeek.NewThreadKey("/r/go/comments/abc/t", "c1"))

		assert.Equal(t, rpeek.DepthReply, p.Depth)
		assert.Equal(t, 2, p.Limit)
		assert.Equal(t, "c1", p.NodeID)
	})

	t.Run("reads without update yield strictly increasing limits", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 4, Sort: rpeek.SortTop})

		prev := 0
		for range 5 {
			p := store.NextParams(key)
			assert.Greater(t, p.Limit, prev)
			prev = p.Limit
		}
		assert.Equal(t, 9, prev)
	})

	t.Run("reads are not applied", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")

		_ = store.NextParams(key)
		_ = store.NextParams(key)

		_, ok := store.Params(key)
		assert.False(t, ok)
	})

	t.Run("rewind restarts from the applied params", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 3, Sort: rpeek.SortTop})
		_ = store.NextParams(key)
		_ = store.NextParams(key)

		store.Rewind(key)

		assert.Equal(t, 4, store.NextParams(key).Limit)
	})

	t.Run("update moves the read cursor to the applied params", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		_ = store.NextParams(key)
		_ = store.NextParams(key)

		store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 7, Sort: rpeek.SortTop})

		assert.Equal(t, 8, store.NextParams(key).Limit)
	})

	t.Run("comment index advances with every read", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		p := rpeek.RequestParams{Depth: 1, Limit: 5, Sort: rpeek.SortTop}
		p.SetCommentIndex(3)
		require.True(t, store.UpdateParams(key, p))

		next := store.NextParams(key)
		again := store.NextParams(key)

		require.NotNil(t, next.CommentIndex)
		assert.Equal(t, 4, *next.CommentIndex)
		assert.Equal(t, 6, next.Limit)
		assert.Equal(t, 5, *again.CommentIndex)

		stored, _ := store.Params(key)
		assert.Equal(t, 3, *stored.CommentIndex, "read must not mutate stored params")
	})
}

func TestCursorStore_UpdateParams(t *testing.T) {
	t.Parallel()

	t.Run("discards stale params", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		require.True(t, store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 6}))

		ok := store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 3})

		assert.False(t, ok)
		stored, _ := store.Params(key)
		assert.Equal(t, 6, stored.Limit)
	})

	t.Run("accepts equal limit", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 6})

		p := rpeek.RequestParams{Depth: 1, Limit: 6}
		p.SetCommentIndex(4)

		assert.True(t, store.UpdateParams(key, p))
	})

	t.Run("stores a copy", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		p := rpeek.RequestParams{Depth: 1, Limit: 2}
		p.SetCommentIndex(1)
		store.UpdateParams(key, p)

		*p.CommentIndex = 99

		stored, _ := store.Params(key)
		assert.Equal(t, 1, *stored.CommentIndex)
	})

	t.Run("reset forgets the stream", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")
		store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: 8})

		store.Reset(key)

		assert.Equal(t, 1, store.NextParams(key).Limit)
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		store := memory.NewCursorStore()
		key := rpeek.NewThreadKey("/r/go/comments/abc/t", "")

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store.UpdateParams(key, rpeek.RequestParams{Depth: 1, Limit: i})
				_ = store.NextParams(key)
			}()
		}
		wg.Wait()

		stored, ok := store.Params(key)
		require.True(t, ok)
		assert.Equal(t, 19, stored.Limit, "highest limit survives any interleaving")
	})
}
