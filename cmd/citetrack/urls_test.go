package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/seaward/citetrack/cmd/citetrack"
	"github.com/seaward/citetrack/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<a href="https://www.dicapi.mil.pe/storage/reports/marzo.pdf">Marzo</a>
<a href="https://www.dicapi.mil.pe/storage/reports/en/marzo.pdf">March</a>
<a href="https://www.dicapi.mil.pe/storage/reports/abril.pdf">Abril</a>
<a href="https://www.dicapi.mil.pe/storage/reports/abril.pdf">Abril otra vez</a>
<a href="https://www.dicapi.mil.pe/nosotros.html">Nosotros</a>
</body></html>`

func TestUrlsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes filtered deduped URL list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		htmlPath := filepath.Join(dir, "listing.html")
		require.NoError(t, os.WriteFile(htmlPath, []byte(listingHTML), 0644))
		outPath := filepath.Join(dir, "pdf_urls.csv")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Logger: discardLogger(),
		}

		cmd := &main.UrlsCmd{File: htmlPath, Out: outPath, Exclude: "/en/"}
		require.NoError(t, cmd.Run(deps))

		urls, err := csv.ReadURLList(outPath)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.dicapi.mil.pe/storage/reports/marzo.pdf",
			"https://www.dicapi.mil.pe/storage/reports/abril.pdf",
		}, urls)
		assert.Contains(t, stdout.String(), "Found 2 report URLs")
	})

	t.Run("returns error for missing snapshot", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Logger: discardLogger(),
		}

		cmd := &main.UrlsCmd{File: filepath.Join(t.TempDir(), "missing.html"), Out: "out.csv"}
		require.Error(t, cmd.Run(deps))
		assert.NotEmpty(t, stderr.String())
	})
}
