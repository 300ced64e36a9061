package citetrack

import (
	"context"
	"strings"
	"time"
)

// Citation represents the fetched and cleaned text content of one
// citation URL, produced once per distinct URL encountered.
type Citation struct {
	ID          string    `json:"id"`
	DocPath     string    `json:"docPath"` // originating report PDF
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the citation contains invalid fields.
func (c *Citation) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "citation URL required")
	}
	return nil
}

// Failed reports whether the citation's content is a fetch-error marker
// rather than page text. Failed citations contribute no matches.
func (c *Citation) Failed() bool {
	return strings.HasPrefix(c.Content, "Error: ")
}

// CitationService represents a service for managing citations.
type CitationService interface {
	// CreateCitation creates a new citation.
	CreateCitation(ctx context.Context, citation *Citation) error

	// FindCitationByID retrieves a citation by ID.
	// Returns ENOTFOUND if citation does not exist.
	FindCitationByID(ctx context.Context, id string) (*Citation, error)

	// FindCitations retrieves citations matching the filter.
	FindCitations(ctx context.Context, filter CitationFilter) ([]*Citation, error)

	// DeleteCitationsByDoc removes all citations extracted from a document.
	DeleteCitationsByDoc(ctx context.Context, docPath string) error
}

// CitationFilter represents a filter for FindCitations.
type CitationFilter struct {
	ID      *string `json:"id"`
	DocPath *string `json:"docPath"`
	URL     *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
