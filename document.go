package citetrack

// SourceDocument represents one infraction report PDF and the citation
// URLs extracted from it.
type SourceDocument struct {
	Path string   `json:"path"`
	URLs []string `json:"urls"`
}

// URLExtractor pulls citation URLs out of a source document.
// Implementations hide the extraction strategy (text-layer pattern
// matching, link annotations, or both).
type URLExtractor interface {
	// ExtractURLs returns the citation URLs found in the document at
	// path, in discovery order, deduplicated within the document.
	ExtractURLs(path string) ([]string, error)
}
