package pdf

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// Text extracts the embedded text layer of the PDF at path. Only the
// text layer is read; scanned documents without one yield an empty
// string, not an error.
func Text(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", err
	}
	return buf.String(), nil
}
