package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seaward/citetrack"
)

// Column headers for citation files.
var (
	urlHeader     = []string{"pdf_path", "url"}
	contentHeader = []string{"pdf_path", "url", "content"}
)

// WriteCitationURLs writes (document, url) pairs for every extracted
// citation URL, one row per URL.
func WriteCitationURLs(path string, docs []*citetrack.SourceDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(urlHeader); err != nil {
		return err
	}
	for _, doc := range docs {
		for _, url := range doc.URLs {
			if err := w.Write([]string{doc.Path, url}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadCitationURLs reads (document, url) pairs into skeletal citations.
// A leading header row is skipped; files written without one load the
// same way. Returns ENOTFOUND if the file does not exist.
func ReadCitationURLs(path string) ([]*citetrack.Citation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "citation URL file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var citations []*citetrack.Citation
	for i, rec := range records {
		if len(rec) < 2 {
			continue // malformed row, skipped locally
		}
		if i == 0 && rec[0] == urlHeader[0] {
			continue
		}
		citations = append(citations, &citetrack.Citation{
			DocPath: rec[0],
			URL:     rec[1],
		})
	}
	return citations, nil
}

// WriteCitationContent writes fetched citations with their cleaned
// content, one row per citation.
func WriteCitationContent(path string, citations []*citetrack.Citation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(contentHeader); err != nil {
		return err
	}
	for _, c := range citations {
		if err := w.Write([]string{c.DocPath, c.URL, c.Content}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadCitationContent reads a fetched-content file back into citations.
// Returns ENOTFOUND if the file does not exist.
func ReadCitationContent(path string) ([]*citetrack.Citation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "citation content file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var citations []*citetrack.Citation
	for i, rec := range records {
		if len(rec) < 3 {
			continue
		}
		if i == 0 && rec[0] == contentHeader[0] {
			continue
		}
		citations = append(citations, &citetrack.Citation{
			DocPath: rec[0],
			URL:     rec[1],
			Content: rec[2],
		})
	}
	return citations, nil
}

// BatchFile returns the path for batch n's content file.
func BatchFile(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("citation_content_batch_%d.csv", n))
}
