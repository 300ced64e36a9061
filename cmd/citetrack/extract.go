package main

import (
	"fmt"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/bloom"
	"github.com/seaward/citetrack/csv"
	"github.com/seaward/citetrack/pdf"
)

// expectedURLVolume sizes the dedup filter. A season of reports yields a
// few thousand citation URLs, so this leaves ample headroom.
const expectedURLVolume = 100_000

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	paths, err := pdf.Find(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found under %q", c.Dir)
	}

	seen := bloom.NewSeenFilter(expectedURLVolume, 0.01)
	var docs []*citetrack.SourceDocument
	var total int

	for _, path := range paths {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		urls, err := deps.URLExtractor.ExtractURLs(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", path, citetrack.ErrorMessage(err))
			continue
		}

		doc := &citetrack.SourceDocument{Path: path}
		for _, url := range urls {
			if seen.Seen(url) {
				continue
			}
			doc.URLs = append(doc.URLs, url)
		}
		total += len(doc.URLs)
		docs = append(docs, doc)
	}

	if err := csv.WriteCitationURLs(c.Out, docs); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	reportPath, err := deps.Reports.WriteURLReport(docs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d citation URLs from %d PDFs\n", total, len(docs))
	fmt.Fprintf(deps.Stdout, "  wrote %s and %s\n", c.Out, reportPath)
	return nil
}
