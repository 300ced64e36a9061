package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/seaward/citetrack"
)

// Compile-time interface verification.
var _ citetrack.CitationService = (*CitationService)(nil)

// CitationService implements citetrack.CitationService using SQLite.
type CitationService struct {
	db *DB
}

// NewCitationService creates a new CitationService.
func NewCitationService(db *DB) *CitationService {
	return &CitationService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateCitation creates a new citation. The ID, content hash and fetch
// timestamp are populated on the passed citation.
func (s *CitationService) CreateCitation(ctx context.Context, citation *citetrack.Citation) error {
	if err := citation.Validate(); err != nil {
		return err
	}

	citation.ID = uuid.New().String()
	citation.ContentHash = hashContent(citation.Content)
	if citation.FetchedAt.IsZero() {
		citation.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO citations (id, doc_path, url, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, citation.ID, citation.DocPath, citation.URL, citation.Content, citation.ContentHash,
		citation.FetchedAt.Format(time.RFC3339))

	return err
}

// FindCitationByID retrieves a citation by ID.
func (s *CitationService) FindCitationByID(ctx context.Context, id string) (*citetrack.Citation, error) {
	var citation citetrack.Citation
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, doc_path, url, content, content_hash, fetched_at
		FROM citations
		WHERE id = ?
	`, id).Scan(&citation.ID, &citation.DocPath, &citation.URL, &citation.Content,
		&citation.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "citation not found")
	}
	if err != nil {
		return nil, err
	}

	citation.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &citation, nil
}

// FindCitations retrieves citations matching the filter, ordered by
// fetch time then URL so repeated calls page deterministically.
func (s *CitationService) FindCitations(ctx context.Context, filter citetrack.CitationFilter) ([]*citetrack.Citation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, doc_path, url, content, content_hash, fetched_at FROM citations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocPath != nil {
		query.WriteString(" AND doc_path = ?")
		args = append(args, *filter.DocPath)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at ASC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var citations []*citetrack.Citation
	for rows.Next() {
		var citation citetrack.Citation
		var fetchedAt string

		if err := rows.Scan(&citation.ID, &citation.DocPath, &citation.URL,
			&citation.Content, &citation.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		citation.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		citations = append(citations, &citation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return citations, nil
}

// DeleteCitationsByDoc removes all citations extracted from a document.
func (s *CitationService) DeleteCitationsByDoc(ctx context.Context, docPath string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM citations WHERE doc_path = ?", docPath)
	return err
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if the values are
// positive.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
