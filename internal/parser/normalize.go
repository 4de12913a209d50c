package parser

import (
	"errors"
	"strings"
)

// ErrEmptyDocument indicates that no extractable text survived
// normalization. Callers must treat this as unreadable input, not as a
// valid zero-length document.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// JoinPages concatenates per-page texts with newline separators, skipping
// pages that yielded no text. The extraction collaborator may emit empty
// strings for image-only pages.
func JoinPages(pages []string) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		parts = append(parts, page)
	}
	return strings.Join(parts, "\n")
}

// Document is the normalized form all extractors and the segmenter
// operate on.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument normalizes raw extracted text into a Document. It returns
// ErrEmptyDocument when the text is empty or whitespace-only.
func NewDocument(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	return &Document{
		Text:  text,
		Lines: strings.Split(text, "\n"),
	}, nil
}

// WordCount returns the number of whitespace-delimited words in the
// document.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Text))
}
