package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/fetch"
	"github.com/seaward/citetrack/fs"
	"github.com/seaward/citetrack/goquery"
	citehttp "github.com/seaward/citetrack/http"
	"github.com/seaward/citetrack/pdf"
	"github.com/seaward/citetrack/rod"
	citeslog "github.com/seaward/citetrack/slog"
	"github.com/seaward/citetrack/sqlite"
	"github.com/seaward/citetrack/trafilatura"
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

	// Log file receiving a copy of the structured log.
	LogPath string

	// SQLite database used by the citation store.
	DB *sqlite.DB

	// Citation store for end-to-end testing.
	CitationService citetrack.CitationService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		LogPath: "scrape.log",
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("citetrack"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'citetrack --help' to see available commands")
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

	deps.Logger, err = m.openLogger(stderr, cli.Verbose)
	if err != nil {
		return err
	}

	if cmd == "fetch" || cmd == "match" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CITETRACK_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.CitationService = sqlite.NewCitationService(m.DB)
		deps.DB = m.DB
		deps.Citations = m.CitationService
	}

	switch cmd {
	case "download":
		deps.Downloader = citehttp.NewDownloader(citetrack.DefaultFetchTimeout)

	case "extract":
		deps.URLExtractor = citeslog.NewLoggingURLExtractor(pdf.NewExtractor(), deps.Logger)
		deps.Reports = fs.NewReportWriter(cli.Extract.LogDir)

	case "fetch":
		var fetcher citetrack.Fetcher
		if cli.Fetch.Render {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		} else {
			var opts []citehttp.Option
			if cli.Fetch.Insecure {
				opts = append(opts, citehttp.WithInsecureTLS())
			}
			fetcher = citehttp.NewFetcher(opts...)
		}

		config := citetrack.DefaultConfig()
		config.Workers = cli.Fetch.Workers
		config.BatchSize = cli.Fetch.BatchSize
		config.RatePerDomain = cli.Fetch.Rate
		config.InsecureSkipVerify = cli.Fetch.Insecure
		if err := config.Validate(); err != nil {
			fetcher.Close()
			return err
		}

		deps.Engine = &fetch.Engine{
			Fetcher: citeslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: &fetch.FallbackExtractor{Extractors: []citetrack.Extractor{
				trafilatura.NewExtractor(),
				goquery.NewExtractor(),
			}},
			Limiter: fetch.NewDomainLimiter(config.RatePerDomain),
			Config:  config,
		}
		defer deps.Engine.Fetcher.Close()
	}

	return kongCtx.Run(deps)
}

// openLogger builds a logger that writes to stderr and the scrape log
// file. The file keeps a durable record of long runs.
func (m *Main) openLogger(stderr io.Writer, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	f, err := os.OpenFile(m.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", m.LogPath, err)
	}
	return citeslog.NewLogger(level, stderr, f), nil
}

func defaultDBPath() string {
	if path := os.Getenv("CITETRACK_DB"); path != "" {
		return path
	}
	return "citetrack.db"
}
