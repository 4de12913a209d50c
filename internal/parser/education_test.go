package parser

import (
	"testing"

	"resumeparse/internal/types"
)

func TestParseEducation(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []types.EducationEntry
	}{
		{
			name:  "institution location and year",
			lines: []string{"MIT | Cambridge | 2019"},
			expected: []types.EducationEntry{
				{Institution: "MIT", Location: "Cambridge", GraduationDate: "2019"},
			},
		},
		{
			name:  "year embedded in longer date field",
			lines: []string{"TU Berlin | Berlin | Graduated 2017 with honors"},
			expected: []types.EducationEntry{
				{Institution: "TU Berlin", Location: "Berlin", GraduationDate: "2017"},
			},
		},
		{
			name:  "institution only",
			lines: []string{"Stanford University"},
			expected: []types.EducationEntry{
				{Institution: "Stanford University"},
			},
		},
		{
			name: "one entry per line",
			lines: []string{
				"MIT | Cambridge | 2019",
				"Stanford | Palo Alto | 2015",
			},
			expected: []types.EducationEntry{
				{Institution: "MIT", Location: "Cambridge", GraduationDate: "2019"},
				{Institution: "Stanford", Location: "Palo Alto", GraduationDate: "2015"},
			},
		},
		{
			name:  "dash bullets skipped",
			lines: []string{"- coursework detail", "MIT | Cambridge | 2019"},
			expected: []types.EducationEntry{
				{Institution: "MIT", Location: "Cambridge", GraduationDate: "2019"},
			},
		},
		{
			name:     "no lines",
			lines:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseEducation(tt.lines)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d entries, got %d", len(tt.expected), len(result))
			}
			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("Entry %d: expected %+v, got %+v", i, expected, result[i])
				}
			}
		})
	}
}

func TestParseEducationGPAStaysEmpty(t *testing.T) {
	entries := ParseEducation([]string{"MIT | Cambridge | 2019, GPA 3.9"})
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].GPA != "" {
		t.Errorf("Expected GPA to stay empty, got %q", entries[0].GPA)
	}
}
