// Package pdf extracts citation URLs from infraction report PDFs.
// URLs are pulled from two places: the embedded text layer, where
// reports cite their source behind a fixed Spanish marker phrase, and
// the document's link annotations.
package pdf

import (
	"regexp"

	"github.com/seaward/citetrack"
)

// DefaultMarker matches the citation marker used by the infraction
// reports, capturing the URL that follows it.
var DefaultMarker = regexp.MustCompile(`Enlace de la noticia/Fuente de información:\s*(https?://[^\s,]+)`)

// generalURL matches any http(s) URL; used as a fallback when the
// marker yields nothing.
var generalURL = regexp.MustCompile(`https?://[^\s,)"]+`)

// Ensure Extractor implements citetrack.URLExtractor at compile time.
var _ citetrack.URLExtractor = (*Extractor)(nil)

// Extractor extracts citation URLs from a PDF file.
type Extractor struct {
	marker *regexp.Regexp
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMarker overrides the citation marker pattern. The pattern's first
// capture group must be the URL.
func WithMarker(re *regexp.Regexp) Option {
	return func(e *Extractor) {
		e.marker = re
	}
}

// NewExtractor creates an Extractor using DefaultMarker.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{marker: DefaultMarker}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractURLs returns the citation URLs found in the PDF at path, in
// discovery order with exact-URL dedup: marker-pattern hits from the
// text layer first (falling back to any URL when the marker finds
// nothing), then link annotations. Annotation failures are tolerated
// when the text layer already produced URLs.
func (e *Extractor) ExtractURLs(path string) ([]string, error) {
	text, err := Text(path)
	if err != nil {
		return nil, citetrack.Errorf(citetrack.EUNAVAILABLE, "read pdf %q: %v", path, err)
	}

	urls := MarkerURLs(text, e.marker)
	if len(urls) == 0 {
		urls = AllURLs(text)
	}

	annots, err := LinkAnnotations(path)
	if err != nil && len(urls) == 0 {
		return nil, citetrack.Errorf(citetrack.EUNAVAILABLE, "read pdf annotations %q: %v", path, err)
	}
	urls = append(urls, annots...)

	return dedupe(urls), nil
}

// MarkerURLs returns the URLs captured by the marker pattern in text.
func MarkerURLs(text string, marker *regexp.Regexp) []string {
	var urls []string
	for _, m := range marker.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 && m[1] != "" {
			urls = append(urls, m[1])
		}
	}
	return urls
}

// AllURLs returns every http(s) URL occurring in text.
func AllURLs(text string) []string {
	return generalURL.FindAllString(text, -1)
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, url := range urls {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
