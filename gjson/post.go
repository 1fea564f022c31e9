package gjson

import (
	"github.com/fwojciec/rpeek"
	"github.com/tidwall/gjson"
)

// NoContent is shown for posts with neither text, link nor video.
const NoContent = "No content available"

// ExtractPost returns the share-preview content of the thread's post.
// The content is the self text, or the link for link posts, or the video
// fallback URL for hosted video.
func (e *Extractor) ExtractPost(payload []byte) (*rpeek.Post, error) {
	post := gjson.GetBytes(payload, listingPath)
	if !post.IsObject() {
		return nil, rpeek.Errorf(rpeek.ENOTFOUND, "could not find post content")
	}

	content := post.Get("selftext").String()
	if content == "" {
		if u := post.Get("url").String(); u != "" {
			content = u
		} else if v := post.Get("media.reddit_video.fallback_url").String(); v != "" {
			content = "[Video] " + v
		} else {
			content = NoContent
		}
	}

	return &rpeek.Post{
		Title:     post.Get("title").String(),
		Author:    post.Get("author").String(),
		Score:     int(post.Get("score").Int()),
		Subreddit: post.Get("subreddit_name_prefixed").String(),
		Content:   content,
	}, nil
}
