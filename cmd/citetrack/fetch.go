package main

import (
	"fmt"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/csv"
	"github.com/seaward/citetrack/fetch"
	"github.com/seaward/citetrack/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	refs, err := csv.ReadCitationURLs(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("no citation URLs in %q", c.File)
	}

	if err := fs.EnsureDir(c.Dir); err != nil {
		return fmt.Errorf("failed to create batch directory %q: %w", c.Dir, err)
	}

	var all []*citetrack.Citation
	persist := func(batch int, citations []*citetrack.Citation) error {
		if err := csv.WriteCitationContent(csv.BatchFile(c.Dir, batch), citations); err != nil {
			return err
		}
		for _, citation := range citations {
			if err := deps.Citations.CreateCitation(deps.Ctx, citation); err != nil {
				return err
			}
		}
		all = append(all, citations...)
		return nil
	}

	progress := func(event fetch.ProgressEvent) {
		switch event.Type {
		case fetch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d citation URLs\n", event.Total)
		case fetch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s (%d/%d)\n", event.URL, event.Completed, event.Total)
		}
	}

	result, err := deps.Engine.FetchAll(deps.Ctx, refs, persist, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	if err := csv.WriteCitationContent(c.Out, all); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d pages in %d batches (%d failed), wrote %s\n",
		result.Fetched, result.Batches, result.Failed, c.Out)
	return nil
}
