package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/seaward/citetrack"
)

// Downloader streams report PDF files to a local directory.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a Downloader with the given per-request timeout.
// A non-positive timeout falls back to DefaultFetchTimeout.
func NewDownloader(timeout time.Duration) *Downloader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Downloader{
		client: &http.Client{Timeout: timeout},
	}
}

// Download fetches rawURL into dir, deriving the filename from the URL
// path. A file that already exists is kept, not refetched, so reruns
// resume where they stopped. Returns the local path.
func (d *Downloader) Download(ctx context.Context, rawURL, dir string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", citetrack.Errorf(citetrack.EINVALID, "invalid document URL %q", rawURL)
	}
	filename := path.Base(parsed.Path)
	if filename == "" || filename == "." || filename == "/" {
		return "", citetrack.Errorf(citetrack.EINVALID, "document URL %q has no filename", rawURL)
	}

	outPath := filepath.Join(dir, filename)
	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(outPath) // don't leave a truncated file behind
		return "", fmt.Errorf("download %q: %w", rawURL, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return outPath, nil
}
