package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/preview"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service *preview.Service
	Posts   rpeek.PostService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL   string        `name:"base-url" env:"RPEEK_BASE_URL" default:"https://www.reddit.com" help:"API host"`
	Timeout   time.Duration `env:"RPEEK_TIMEOUT" default:"4s" help:"Per-request timeout"`
	RPS       float64       `name:"rps" env:"RPEEK_RPS" default:"2" help:"Requests per second"`
	Session   string        `env:"RPEEK_SESSION" help:"Session cookie of a logged-in user"`
	UserAgent string        `name:"user-agent" env:"RPEEK_USER_AGENT" help:"User-Agent header"`
	Verbose   bool          `short:"v" help:"Log every request"`

	Comments CommentsCmd `cmd:"" help:"Reveal the comments of a thread one at a time"`
	Post     PostCmd     `cmd:"" help:"Show the post of a thread"`
	Vote     VoteCmd     `cmd:"" help:"Vote on a comment"`
	Whoami   WhoamiCmd   `cmd:"" help:"Show the session in use"`
}

// CommentsCmd is the "comments" subcommand.
type CommentsCmd struct {
	URL     string `arg:"" help:"Thread URL"`
	Count   int    `short:"n" default:"1" help:"Number of items to reveal"`
	Replies string `help:"Reveal replies of this comment id instead of top-level comments"`
}

// PostCmd is the "post" subcommand.
type PostCmd struct {
	URL string `arg:"" help:"Thread URL"`
}

// VoteCmd is the "vote" subcommand.
type VoteCmd struct {
	URL string `arg:"" help:"Thread URL"`
	ID  string `arg:"" help:"Comment id"`
	Dir string `arg:"" enum:"up,down,clear" help:"Vote direction (up, down, clear)"`
}

// WhoamiCmd is the "whoami" subcommand.
type WhoamiCmd struct{}
