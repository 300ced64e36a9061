package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/seaward/citetrack"
)

// Ensure Extractor implements citetrack.Extractor at compile time.
var _ citetrack.Extractor = (*Extractor)(nil)

// Extractor strips script and style markup from a page and returns the
// remaining visible text with whitespace collapsed. Unlike the
// trafilatura extractor it keeps navigation and footer text, which is
// acceptable for whole-word entity matching.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page's visible text.
func (e *Extractor) Extract(html string) (*citetrack.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, citetrack.Errorf(citetrack.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	return &citetrack.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
