package parser

import (
	"reflect"
	"testing"
)

func TestSegmentSections(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected map[SectionKind][]string
	}{
		{
			name:  "skills header with one body line",
			lines: []string{"SKILLS", "Python, Go, Rust"},
			expected: map[SectionKind][]string{
				SectionSkills: {"Python, Go, Rust"},
			},
		},
		{
			name: "two sections in sequence",
			lines: []string{
				"EXPERIENCE",
				"Acme Corp | 2020 - 2022",
				"Did things",
				"EDUCATION",
				"MIT | Cambridge | 2019",
			},
			expected: map[SectionKind][]string{
				SectionExperience: {"Acme Corp | 2020 - 2022", "Did things"},
				SectionEducation:  {"MIT | Cambridge | 2019"},
			},
		},
		{
			name: "blank lines and dash separators skipped",
			lines: []string{
				"SKILLS",
				"",
				"----------------",
				"Go, Rust",
			},
			expected: map[SectionKind][]string{
				SectionSkills: {"Go, Rust"},
			},
		},
		{
			name: "unrecognized all-caps header closes section",
			lines: []string{
				"SKILLS",
				"Go, Rust",
				"PROJECTS",
				"orphaned line",
			},
			expected: map[SectionKind][]string{
				SectionSkills: {"Go, Rust"},
			},
		},
		{
			name: "lines before any section are dropped",
			lines: []string{
				"John Smith",
				"john@example.com",
				"INTERESTS",
				"chess",
			},
			expected: map[SectionKind][]string{
				SectionInterests: {"chess"},
			},
		},
		{
			name: "repeated section kind merges bodies",
			lines: []string{
				"SKILLS",
				"Go",
				"TECHNICAL SKILLS",
				"Rust",
			},
			expected: map[SectionKind][]string{
				SectionSkills: {"Go", "Rust"},
			},
		},
		{
			name: "case-insensitive trigger match",
			lines: []string{
				"Work Experience",
				"Acme Corp | 2020",
			},
			expected: map[SectionKind][]string{
				SectionExperience: {"Acme Corp | 2020"},
			},
		},
		{
			name:     "no sections at all",
			lines:    []string{"just some text", "more text"},
			expected: map[SectionKind][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SegmentSections(tt.lines)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMatchSectionTriggerOrder(t *testing.T) {
	// The line contains phrases from the experience set only, but the
	// first matching kind in table order must win whenever several
	// phrase sets could match.
	kind, ok := matchSectionTrigger("Professional Experience and Employment")
	if !ok {
		t.Fatalf("Expected a trigger match")
	}
	if kind != SectionExperience {
		t.Errorf("Expected %q, got %q", SectionExperience, kind)
	}
}

func TestIsSeparatorLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"long dash rule", "---------------", true},
		{"short dash bullet", "- item", false},
		{"long non-dash line", "a very long line here", false},
		{"exactly ten dashes", "----------", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := isSeparatorLine(tt.line); result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.line, result)
			}
		})
	}
}

func TestIsUnrecognizedHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"known boundary word", "PROJECTS", true},
		{"two word boundary header", "SELECTED PUBLICATIONS", true},
		{"mixed case rejected", "Projects", false},
		{"too many words", "ALL MY FAVOURITE SIDE PROJECTS", false},
		{"all caps but unknown word", "WHATEVER", false},
		{"digits only", "2020", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := isUnrecognizedHeader(tt.line); result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.line, result)
			}
		})
	}
}
