package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/seaward/citetrack"
)

// WriteURLList writes a single-column URL list with a "URL" header.
func WriteURLList(path string, urls []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"URL"}); err != nil {
		return err
	}
	for _, url := range urls {
		if err := w.Write([]string{url}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadURLList reads a single-column URL list, skipping the header row
// and blank rows. Returns ENOTFOUND if the file does not exist.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "URL list %q not found", path)
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

	var urls []string
	for i, rec := range records {
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		if i == 0 && rec[0] == "URL" {
			continue
		}
		urls = append(urls, rec[0])
	}
	return urls, nil
}
