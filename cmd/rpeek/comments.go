package main

import (
	"fmt"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/preview"
)

// Run executes the comments command.
func (c *CommentsCmd) Run(deps *Dependencies) error {
	if c.Count < 1 {
		return rpeek.Errorf(rpeek.EINVALID, "count must be at least 1")
	}

	surface := deps.Service.NewSurface()
	defer surface.Close()

	res, err := surface.Open(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rpeek.ErrorMessage(err))
		return err
	}

	// Opening reveals the first top-level comment; replies start after it.
	remaining := c.Count - 1
	if c.Replies != "" {
		remaining = c.Count
	}
	for i := 0; i < remaining && res.Status != preview.StatusEnd; i++ {
		res, err = surface.Next(deps.Ctx, c.Replies)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", rpeek.ErrorMessage(err))
			return err
		}
	}

	if res.Content != "" {
		fmt.Fprintln(deps.Stdout, res.Content)
	}
	if res.Status == preview.StatusEnd {
		if c.Replies != "" {
			fmt.Fprintln(deps.Stdout, "No more replies")
		} else {
			fmt.Fprintln(deps.Stdout, "No more comments")
		}
	}
	return nil
}
