package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/googlenews"
	nghttp "github.com/fwojciec/newsgrab/http"
	"github.com/fwojciec/newsgrab/pipeline"
	"github.com/fwojciec/newsgrab/readability"
	"github.com/fwojciec/newsgrab/reddit"
	ngslog "github.com/fwojciec/newsgrab/slog"
	"github.com/fwojciec/newsgrab/sqlite"
	"github.com/fwojciec/newsgrab/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService    newsgrab.RunService
	RecordService newsgrab.RecordService

	// Runner override for end-to-end testing. When nil, Run wires the
	// real source clients and fetcher.
	Runner *pipeline.Runner
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsgrab"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsgrab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEWSGRAB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RunService = sqlite.NewRunService(m.DB)
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Records = m.RecordService

	// Wire the extraction pipeline for the grab command
	if cmd == "grab" {
		if m.Runner == nil {
			runner, cleanup := newRunner(&cli.Grab, stderr)
			defer cleanup()
			m.Runner = runner
		}
		deps.Runner = m.Runner
	}

	return kongCtx.Run(deps)
}

// newRunner builds the extraction pipeline from grab command flags.
// The returned cleanup closes the underlying fetcher.
func newRunner(cmd *GrabCmd, stderr io.Writer) (*pipeline.Runner, func()) {
	var fetcher newsgrab.Fetcher = nghttp.NewFetcher()
	cleanup := func() { fetcher.Close() }

	redditClient := reddit.NewClient(fetcher,
		reddit.WithSort(cmd.Sort),
		reddit.WithTimeRange(cmd.TimeRange),
	)
	newsMode := googlenews.ModeRSS
	if cmd.Sweep {
		newsMode = googlenews.ModeHTML
	}
	newsClient := googlenews.NewClient(fetcher,
		googlenews.WithCountry(cmd.Country),
		googlenews.WithMode(newsMode),
	)

	sources := map[newsgrab.Source]newsgrab.SourceClient{
		newsgrab.SourceReddit:     redditClient,
		newsgrab.SourceGoogleNews: newsClient,
	}

	if cmd.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = ngslog.NewLoggingFetcher(fetcher, logger)
		for source, client := range sources {
			sources[source] = ngslog.NewLoggingSourceClient(client, logger)
		}
	}

	return &pipeline.Runner{
		Sources: sources,
		Extractors: map[newsgrab.Source]newsgrab.Extractor{
			newsgrab.SourceReddit: reddit.NewExtractor(),
			newsgrab.SourceGoogleNews: &pipeline.FallbackExtractor{Extractors: []newsgrab.Extractor{
				trafilatura.NewExtractor(),
				readability.NewExtractor(),
			}},
		},
		Fetcher:     fetcher,
		RateLimiter: pipeline.NewRateLimiter(1.0),
		Concurrency: cmd.Concurrency,
	}, cleanup
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSGRAB_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsgrab.db"
	}
	dir := filepath.Join(home, ".newsgrab")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsgrab.db")
}
