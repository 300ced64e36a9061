// Package fs provides file-based outputs: the JSON extraction report
// mapping each source document to the citation URLs found in it.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/seaward/citetrack"
)

// ReportWriter writes extraction reports into a base directory.
type ReportWriter struct {
	baseDir string
}

// NewReportWriter creates a ReportWriter rooted at baseDir.
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{baseDir: baseDir}
}

// WriteURLReport writes the document-to-URLs map as indented JSON to a
// timestamped file under the base directory and returns the file path.
func (w *ReportWriter) WriteURLReport(docs []*citetrack.SourceDocument) (string, error) {
	report := make(map[string][]string, len(docs))
	for _, doc := range docs {
		report[doc.Path] = doc.URLs
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	if err := EnsureDir(w.baseDir); err != nil {
		return "", err
	}

	name := "citation_urls_" + time.Now().UTC().Format("20060102_150405") + ".json"
	path := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureDir creates the directory and its parents if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
