package csv_test

import (
	"path/filepath"
	"testing"

	"github.com/seaward/citetrack"
	citecsv "github.com/seaward/citetrack/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitationURLs_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "citation_urls.csv")

	docs := []*citetrack.SourceDocument{
		{Path: "pdfs/report-1.pdf", URLs: []string{"http://a.com", "http://b.com"}},
		{Path: "pdfs/report-2.pdf", URLs: []string{"http://c.com"}},
	}
	require.NoError(t, citecsv.WriteCitationURLs(path, docs))

	citations, err := citecsv.ReadCitationURLs(path)
	require.NoError(t, err)

	require.Len(t, citations, 3)
	assert.Equal(t, "pdfs/report-1.pdf", citations[0].DocPath)
	assert.Equal(t, "http://a.com", citations[0].URL)
	assert.Equal(t, "http://c.com", citations[2].URL)
}

func TestReadCitationURLs_Headerless(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "urls.csv",
		"pdfs/r.pdf,http://a.com\npdfs/r.pdf,http://b.com\n")

	citations, err := citecsv.ReadCitationURLs(path)
	require.NoError(t, err)
	require.Len(t, citations, 2)
}

func TestReadCitationURLs_Missing(t *testing.T) {
	t.Parallel()

	_, err := citecsv.ReadCitationURLs(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, citetrack.ENOTFOUND, citetrack.ErrorCode(err))
}

func TestCitationContent_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "content.csv")
	citations := []*citetrack.Citation{
		{DocPath: "pdfs/r.pdf", URL: "http://a.com", Content: "[Source: a.com] text with, commas and \"quotes\""},
		{DocPath: "pdfs/r.pdf", URL: "http://b.com", Content: "Error: Request timed out"},
	}
	require.NoError(t, citecsv.WriteCitationContent(path, citations))

	got, err := citecsv.ReadCitationContent(path)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, citations[0].Content, got[0].Content)
	assert.Equal(t, "Error: Request timed out", got[1].Content)
}

func TestURLList_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pdf_urls.csv")
	urls := []string{"https://example.com/a.pdf", "https://example.com/b.pdf"}
	require.NoError(t, citecsv.WriteURLList(path, urls))

	got, err := citecsv.ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, urls, got)
}

func TestBatchFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("out", "citation_content_batch_3.csv"), citecsv.BatchFile("out", 3))
}
