// Package goquery provides HTML-parsing implementations: document link
// extraction from the source listing page and a markup-stripping text
// extractor used as a fallback when boilerplate removal fails.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/seaward/citetrack"
)

// ListingFilter selects which anchors on a listing page count as report
// documents.
type ListingFilter struct {
	// Prefix is the required URL prefix (the document storage base).
	Prefix string

	// Suffix is the required URL suffix, normally ".pdf".
	Suffix string

	// Exclude drops URLs containing this fragment. The listing links
	// every report twice; excluding "/en/" keeps the Spanish originals.
	Exclude string
}

// ExtractDocumentLinks parses a listing-page snapshot and returns the
// document URLs matching the filter, in document order, deduplicated.
func ExtractDocumentLinks(html string, filter ListingFilter) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, citetrack.Errorf(citetrack.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var urls []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if filter.Prefix != "" && !strings.HasPrefix(href, filter.Prefix) {
			return
		}
		if filter.Suffix != "" && !strings.HasSuffix(href, filter.Suffix) {
			return
		}
		if filter.Exclude != "" && strings.Contains(href, filter.Exclude) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
	})

	return urls, nil
}
