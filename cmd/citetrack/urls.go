package main

import (
	"fmt"
	"os"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/csv"
	"github.com/seaward/citetrack/goquery"
)

// Run executes the urls command.
func (c *UrlsCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.File, err)
		return err
	}

	filter := goquery.ListingFilter{
		Prefix:  c.Prefix,
		Suffix:  ".pdf",
		Exclude: c.Exclude,
	}
	urls, err := goquery.ExtractDocumentLinks(string(html), filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	if err := csv.WriteURLList(c.Out, urls); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d report URLs, wrote %s\n", len(urls), c.Out)
	return nil
}
