package mock

import (
	"context"

	"github.com/seaward/citetrack"
)

var _ citetrack.CitationService = (*CitationService)(nil)

// CitationService is a mock implementation of citetrack.CitationService.
type CitationService struct {
	CreateCitationFn       func(ctx context.Context, citation *citetrack.Citation) error
	FindCitationByIDFn     func(ctx context.Context, id string) (*citetrack.Citation, error)
	FindCitationsFn        func(ctx context.Context, filter citetrack.CitationFilter) ([]*citetrack.Citation, error)
	DeleteCitationsByDocFn func(ctx context.Context, docPath string) error
}

func (s *CitationService) CreateCitation(ctx context.Context, citation *citetrack.Citation) error {
	return s.CreateCitationFn(ctx, citation)
}

func (s *CitationService) FindCitationByID(ctx context.Context, id string) (*citetrack.Citation, error) {
	return s.FindCitationByIDFn(ctx, id)
}

func (s *CitationService) FindCitations(ctx context.Context, filter citetrack.CitationFilter) ([]*citetrack.Citation, error) {
	return s.FindCitationsFn(ctx, filter)
}

func (s *CitationService) DeleteCitationsByDoc(ctx context.Context, docPath string) error {
	return s.DeleteCitationsByDocFn(ctx, docPath)
}
