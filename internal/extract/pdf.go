// Package extract turns PDF bytes into per-page plain text. It is the
// upstream collaborator of the parsing pipeline: pages that yield no
// text are passed through as empty strings for the normalizer to skip.
package extract

import (
	"bytes"

	"resumeparse/internal/errors"

	"github.com/ledongthuc/pdf"
)

// PageTexts extracts the plain text of every page in the document.
// A document that cannot be opened at all is a fatal extraction error;
// individual pages that fail to render contribute an empty string
// instead of failing the document.
func PageTexts(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewDocumentError(
			errors.ErrCodeExtractionFailed,
			"failed to open PDF document",
			err,
		)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Tolerate single bad pages; the rest of the document may
			// still carry enough text.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
