package parser

import (
	"errors"
	"testing"
)

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected string
	}{
		{
			name:     "two pages joined with newline",
			pages:    []string{"page one", "page two"},
			expected: "page one\npage two",
		},
		{
			name:     "empty pages skipped",
			pages:    []string{"page one", "", "page two"},
			expected: "page one\npage two",
		},
		{
			name:     "whitespace-only pages skipped",
			pages:    []string{"page one", "   \n\t  ", "page two"},
			expected: "page one\npage two",
		},
		{
			name:     "all pages empty",
			pages:    []string{"", "  "},
			expected: "",
		},
		{
			name:     "no pages",
			pages:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JoinPages(tt.pages)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expectError bool
		lines       int
	}{
		{
			name:  "multi-line text",
			text:  "John Smith\njohn@example.com",
			lines: 2,
		},
		{
			name:  "single line",
			text:  "just one line",
			lines: 1,
		},
		{
			name:        "empty text",
			text:        "",
			expectError: true,
		},
		{
			name:        "whitespace-only text",
			text:        "  \n\t \n ",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDocument(tt.text)
			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if !errors.Is(err, ErrEmptyDocument) {
					t.Errorf("Expected ErrEmptyDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if len(doc.Lines) != tt.lines {
				t.Errorf("Expected %d lines, got %d", tt.lines, len(doc.Lines))
			}
			if doc.Text != tt.text {
				t.Errorf("Expected text to be preserved, got %q", doc.Text)
			}
		})
	}
}

func TestDocumentWordCount(t *testing.T) {
	doc := &Document{Text: "one two  three\nfour"}
	if count := doc.WordCount(); count != 4 {
		t.Errorf("Expected 4 words, got %d", count)
	}
}
