package mock

import "github.com/seaward/citetrack"

var _ citetrack.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of citetrack.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*citetrack.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*citetrack.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ citetrack.URLExtractor = (*URLExtractor)(nil)

// URLExtractor is a mock implementation of citetrack.URLExtractor.
type URLExtractor struct {
	ExtractURLsFn func(path string) ([]string, error)
}

func (e *URLExtractor) ExtractURLs(path string) ([]string, error) {
	return e.ExtractURLsFn(path)
}
