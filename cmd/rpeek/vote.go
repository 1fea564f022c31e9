package main

import (
	"fmt"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/preview"
)

var voteDirs = map[string]int{
	"up":    preview.VoteUp,
	"down":  preview.VoteDown,
	"clear": preview.VoteClear,
}

// Run executes the vote command.
func (c *VoteCmd) Run(deps *Dependencies) error {
	dir, ok := voteDirs[c.Dir]
	if !ok {
		return rpeek.Errorf(rpeek.EINVALID, "unknown vote direction %q", c.Dir)
	}

	surface := deps.Service.NewSurface()
	defer surface.Close()

	if err := surface.Vote(deps.Ctx, c.ID, dir); err != nil {
		if rpeek.ErrorCode(err) == rpeek.EUNAUTHORIZED {
			fmt.Fprintln(deps.Stderr, "Hint: set RPEEK_SESSION to the session cookie of a logged-in user")
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", rpeek.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Voted %s on %s in %s\n", c.Dir, c.ID, rpeek.CanonicalURL(c.URL))
	return nil
}
