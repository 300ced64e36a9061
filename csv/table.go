// Package csv provides CSV-backed persistence for reference tables and
// the citation corpus.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/seaward/citetrack"
)

// LoadTable reads a reference table and validates it against the schema.
// The declared name column must exist in the header or the load fails
// with EINVALID; the links column is appended when absent. Ragged rows
// are tolerated and padded on save. Returns ENOTFOUND if the file does
// not exist.
func LoadTable(path string, schema citetrack.Schema) (*citetrack.Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "table file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("open table %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, citetrack.Errorf(citetrack.EINVALID, "table file %q is empty", path)
	}

	columns := records[0]
	nameIdx := indexOf(columns, schema.NameColumn)
	if nameIdx < 0 {
		return nil, citetrack.Errorf(citetrack.EINVALID,
			"table file %q missing required column %q", path, schema.NameColumn)
	}

	linksIdx := indexOf(columns, schema.LinksColumn)
	if linksIdx < 0 {
		columns = append(columns, schema.LinksColumn)
		linksIdx = len(columns) - 1
	}

	return &citetrack.Table{
		Kind:       schema.Kind,
		Columns:    columns,
		Rows:       records[1:],
		NameIndex:  nameIdx,
		LinksIndex: linksIdx,
	}, nil
}

// SaveTable writes a reference table back to disk. Rows shorter than the
// header are padded with empty fields so the links column always lands
// in its declared position.
func SaveTable(path string, table *citetrack.Table) error {
	if err := table.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		for len(row) < len(table.Columns) {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
