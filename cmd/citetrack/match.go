package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/csv"
	"github.com/seaward/citetrack/excelize"
	"github.com/seaward/citetrack/match"
)

// Run executes the match command.
func (c *MatchCmd) Run(deps *Dependencies) error {
	citations, err := c.loadCitations(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}
	if len(citations) == 0 {
		return fmt.Errorf("no citations to match against")
	}

	aliases, err := c.loadAliases()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	schemas := citetrack.DefaultSchemas()
	runs := []struct {
		path    string
		schema  citetrack.Schema
		matcher *match.Matcher
	}{
		{c.Topics, schemas[citetrack.KindTopic], match.New(match.WithAliases(aliases))},
		{c.Vessels, schemas[citetrack.KindVessel], match.New()},
		{c.Plants, schemas[citetrack.KindPlant], match.New(match.WithNormalizer(match.CleanCompanyName))},
		{c.Owners, schemas[citetrack.KindOwner], match.New()},
	}

	var tables []*citetrack.Table
	for _, run := range runs {
		table, err := csv.LoadTable(run.path, run.schema)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
			return err
		}

		result, err := run.matcher.MatchTable(table, citations)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
			return err
		}

		if err := csv.SaveTable(run.path, table); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
			return err
		}

		deps.Logger.Info("match",
			"table", string(table.Kind),
			"rows", result.Rows,
			"matched", result.Matched,
			"links", result.Links,
		)
		fmt.Fprintf(deps.Stdout, "  %s: %d rows, %d matched, %d new links\n",
			table.Kind, result.Rows, result.Matched, result.Links)

		tables = append(tables, table)
	}

	if err := excelize.WriteWorkbook(c.Xlsx, tables); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citetrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Xlsx)
	return nil
}

// loadCitations reads the corpus from the content CSV when given, the
// citation store otherwise.
func (c *MatchCmd) loadCitations(deps *Dependencies) ([]*citetrack.Citation, error) {
	if c.Content != "" {
		return csv.ReadCitationContent(c.Content)
	}
	return deps.Citations.FindCitations(deps.Ctx, citetrack.CitationFilter{})
}

// loadAliases reads the topic alias map, if configured.
func (c *MatchCmd) loadAliases() (map[string][]string, error) {
	if c.Aliases == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.Aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file %q: %w", c.Aliases, err)
	}

	var aliases map[string][]string
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, citetrack.Errorf(citetrack.EINVALID, "invalid aliases file %q: %v", c.Aliases, err)
	}
	return aliases, nil
}
