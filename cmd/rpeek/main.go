package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rpeek"
	"github.com/fwojciec/rpeek/gjson"
	"github.com/fwojciec/rpeek/goquery"
	"github.com/fwojciec/rpeek/htmltomarkdown"
	rpeekhttp "github.com/fwojciec/rpeek/http"
	"github.com/fwojciec/rpeek/memory"
	"github.com/fwojciec/rpeek/prefetch"
	"github.com/fwojciec/rpeek/preview"
	rpeekslog "github.com/fwojciec/rpeek/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Transport used instead of the HTTP transport when set.
	Transport rpeek.Transport

	prefetcher *prefetch.Prefetcher
	http       *rpeekhttp.Transport
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.prefetcher != nil {
		_ = m.prefetcher.Close()
	}
	if m.http != nil {
		return m.http.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rpeek"),
		kong.Description("Preview thread comments one at a time."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rpeek --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	transport := m.Transport
	if transport == nil {
		opts := []rpeekhttp.Option{
			rpeekhttp.WithBaseURL(cli.BaseURL),
			rpeekhttp.WithRateLimit(cli.RPS, rpeekhttp.DefaultBurst),
			rpeekhttp.WithSession(cli.Session),
		}
		if cli.UserAgent != "" {
			opts = append(opts, rpeekhttp.WithUserAgent(cli.UserAgent))
		}
		m.http = rpeekhttp.NewTransport(opts...)
		transport = m.http
	}
	transport = rpeekslog.NewLoggingTransport(transport, logger)
	defer m.Close()

	m.prefetcher = prefetch.NewPrefetcher(transport, prefetch.WithLogger(logger))
	extractor := gjson.NewExtractor()

	deps.Service = &preview.Service{
		Cursors:   memory.NewCursorStore(),
		Fetcher:   rpeekslog.NewLoggingBatchFetcher(m.prefetcher, logger),
		Extractor: extractor,
		Renders:   memory.NewRenderCache(),
		Renderer:  htmltomarkdown.NewRenderer(goquery.NewLinkExtractor()),
		Transport: transport,
		Sessions:  rpeekhttp.NewSessionService(transport, logger),
		Timeout:   cli.Timeout,
		Logger:    logger,
	}
	deps.Posts = preview.NewPostPreviewer(transport, extractor)

	return kongCtx.Run(deps)
}
