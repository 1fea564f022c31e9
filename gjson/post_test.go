package gjson_test

import (
	"testing"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/gjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postPayload(data string) []byte {
	return []byte(`[{"kind":"Listing","data":{"children":[{"kind":"t3","data":` + data + `}]}},{"kind":"Listing","data":{"children":[]}}]`)
}

func TestExtractor_ExtractPost(t *testing.T) {
	t.Parallel()

	ex := gjson.NewExtractor()

	t.Run("self post uses its text", func(t *testing.T) {
		t.Parallel()

		post, err := ex.ExtractPost(postPayload(`{"title":"Ask","author":"me","score":7,"subreddit_name_prefixed":"r/golang","selftext":"How do I?","url":"https://www.reddit.com/r/golang/comments/x/ask/"}`))

		require.NoError(t, err)
		assert.Equal(t, &rpeek.Post{Title: "Ask", Author: "me", Score: 7, Subreddit: "r/golang", Content: "How do I?"}, post)
	})

	t.Run("link post falls back to the url", func(t *testing.T) {
		t.Parallel()

		post, err := ex.ExtractPost(postPayload(`{"title":"Blog","selftext":"","url":"https://go.dev/blog"}`))

		require.NoError(t, err)
		assert.Equal(t, "https://go.dev/blog", post.Content)
	})

	t.Run("hosted video falls back to the fallback url", func(t *testing.T) {
		t.Parallel()

		post, err := ex.ExtractPost(postPayload(`{"title":"Clip","selftext":"","media":{"reddit_video":{"fallback_url":"https://v.redd.it/x/DASH_720.mp4"}}}`))

		require.NoError(t, err)
		assert.Equal(t, "[Video] https://v.redd.it/x/DASH_720.mp4", post.Content)
	})

	t.Run("no content placeholder", func(t *testing.T) {
		t.Parallel()

		post, err := ex.ExtractPost(postPayload(`{"title":"Empty"}`))

		require.NoError(t, err)
		assert.Equal(t, gjson.NoContent, post.Content)
	})

	t.Run("not found without a post", func(t *testing.T) {
		t.Parallel()

		_, err := ex.ExtractPost([]byte(`[{"data":{"children":[]}}]`))

		require.Error(t, err)
		assert.Equal(t, rpeek.ENOTFOUND, rpeek.ErrorCode(err))
	})
}
