package main

import (
	"fmt"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/csv"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	urls, err := csv.ReadURLList(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	var saved, failed int
	for _, url := range urls {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		path, err := deps.Downloader.Download(deps.Ctx, url, c.Dir)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", url, err)
			continue
		}
		saved++
		deps.Logger.Info("download", "url", url, "path", path)
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d of %d PDFs to %s (%d failed)\n",
		saved, len(urls), c.Dir, failed)
	return nil
}
