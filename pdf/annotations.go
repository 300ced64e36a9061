package pdf

import (
	"os"
	"slices"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu reads a config dir by default, which is unsafe when
	// multiple extractions run concurrently.
	pdfapi.DisableConfigDir()
}

// LinkAnnotations returns the URIs of link annotations in the PDF at
// path, in page order. Non-web schemes (mailto:, tel:, file:) are
// skipped.
func LinkAnnotations(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	annots, err := pdfapi.Annotations(f, nil, nil)
	if err != nil {
		return nil, err
	}

	return linkURLs(annots), nil
}

// linkURLs collects link-annotation URIs sorted by page number and, within
// a page, by annotation object number. pdfcpu hands back maps, so iterating
// them directly would yield a different order on every run.
func linkURLs(annots map[int]pdfmodel.PgAnnots) []string {
	pages := make([]int, 0, len(annots))
	for page := range annots {
		pages = append(pages, page)
	}
	slices.Sort(pages)

	var urls []string
	for _, page := range pages {
		linkAnnots, ok := annots[page][pdfmodel.AnnLink]
		if !ok {
			continue
		}
		objNrs := make([]int, 0, len(linkAnnots.Map))
		for objNr := range linkAnnots.Map {
			objNrs = append(objNrs, objNr)
		}
		slices.Sort(objNrs)

		for _, objNr := range objNrs {
			link, ok := linkAnnots.Map[objNr].(pdfmodel.LinkAnnotation)
			if !ok || link.URI == "" {
				continue
			}
			if strings.HasPrefix(link.URI, "mailto:") ||
				strings.HasPrefix(link.URI, "tel:") ||
				strings.HasPrefix(link.URI, "file:") {
				continue
			}
			urls = append(urls, link.URI)
		}
	}
	return urls
}
