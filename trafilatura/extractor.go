// Package trafilatura extracts readable text from fetched citation
// pages, removing navigation, ads, and other boilerplate.
package trafilatura

import (
	"errors"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/seaward/citetrack"
)

// Ensure Extractor implements citetrack.Extractor at compile time.
var _ citetrack.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as plain text
// with whitespace collapsed.
func (e *Extractor) Extract(rawHTML string) (*citetrack.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &citetrack.ExtractResult{
		Title: result.Metadata.Title,
		Text:  strings.Join(strings.Fields(result.ContentText), " "),
	}, nil
}
