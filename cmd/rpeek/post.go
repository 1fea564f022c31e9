package main

import (
	"fmt"

	"github.com/fwojciec/rpeek"
)

// Run executes the post command.
func (c *PostCmd) Run(deps *Dependencies) error {
	post, err := deps.Posts.Post(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rpeek.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, post.Title)
	fmt.Fprintf(deps.Stdout, "%s · %s · %d points\n\n", post.Subreddit, post.Author, post.Score)
	fmt.Fprintln(deps.Stdout, post.Content)
	return nil
}
