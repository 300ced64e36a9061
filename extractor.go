package citetrack

// ExtractResult holds the extracted content of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text with boilerplate
	// (nav, footer, scripts, ads) removed and whitespace collapsed.
	Text string
}

// Extractor extracts readable text from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
