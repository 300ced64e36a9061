package fetch

import "github.com/seaward/citetrack"

var _ citetrack.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries extractors in order and returns the first
// result with non-empty text. Boilerplate removal sometimes strips a
// short article to nothing; the markup-stripping fallback then still
// yields searchable content.
type FallbackExtractor struct {
	Extractors []citetrack.Extractor
}

// Extract runs each extractor until one produces text. When none does,
// the last non-nil result is returned, or the last error if every
// extractor failed.
func (e *FallbackExtractor) Extract(html string) (*citetrack.ExtractResult, error) {
	var lastResult *citetrack.ExtractResult
	var lastErr error

	for _, extractor := range e.Extractors {
		result, err := extractor.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if result.Text != "" {
			return result, nil
		}
		lastResult = result
	}

	if lastResult != nil {
		return lastResult, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, citetrack.Errorf(citetrack.EINVALID, "no extractors configured")
}
