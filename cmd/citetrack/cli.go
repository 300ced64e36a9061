package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/fetch"
	"github.com/seaward/citetrack/fs"
	citehttp "github.com/seaward/citetrack/http"
	"github.com/seaward/citetrack/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB           *sqlite.DB
	Citations    citetrack.CitationService
	Downloader   *citehttp.Downloader
	URLExtractor citetrack.URLExtractor
	Reports      *fs.ReportWriter
	Engine       *fetch.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Urls     UrlsCmd     `cmd:"" help:"Extract report PDF URLs from a listing page snapshot"`
	Download DownloadCmd `cmd:"" help:"Download report PDFs from a URL list"`
	Extract  ExtractCmd  `cmd:"" help:"Extract citation URLs from downloaded PDFs"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch and clean the pages behind citation URLs"`
	Match    MatchCmd    `cmd:"" help:"Cross-reference entity tables against fetched citations"`
}

// UrlsCmd is the "urls" subcommand.
type UrlsCmd struct {
	File    string `arg:"" help:"Listing page HTML snapshot"`
	Out     string `short:"o" default:"pdf_urls.csv" help:"Output URL list CSV"`
	Prefix  string `help:"Required document URL prefix"`
	Exclude string `default:"/en/" help:"Drop URLs containing this fragment"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	File string `arg:"" help:"URL list CSV"`
	Dir  string `short:"d" default:"pdfs" help:"Target directory"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Dir    string `arg:"" help:"Directory of report PDFs"`
	Out    string `short:"o" default:"citation_urls.csv" help:"Output citation URL CSV"`
	LogDir string `default:"logs" help:"Directory for the JSON extraction report"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	File      string  `arg:"" help:"Citation URL CSV"`
	Dir       string  `short:"d" default:"batches" help:"Directory for batch content CSVs"`
	Out       string  `short:"o" default:"citation_content.csv" help:"Combined content CSV"`
	Workers   int     `short:"c" default:"10" help:"Concurrent fetch limit"`
	BatchSize int     `default:"50" help:"URLs per persisted batch"`
	Rate      float64 `default:"1.0" help:"Requests per second per domain"`
	Render    bool    `help:"Fetch with a headless browser instead of plain HTTP"`
	Insecure  bool    `help:"Skip TLS certificate verification"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	Content string `arg:"" optional:"" help:"Citation content CSV (omit to read the citation store)"`
	Topics  string `default:"topics.csv" help:"Topics table CSV"`
	Vessels string `default:"vessels.csv" help:"Vessels table CSV"`
	Plants  string `default:"plants.csv" help:"Plants table CSV"`
	Owners  string `default:"owners.csv" help:"Owners table CSV"`
	Aliases string `help:"JSON file of topic aliases (name to alternate terms)"`
	Xlsx    string `default:"All_Updated_Data.xlsx" help:"Combined workbook output"`
}
