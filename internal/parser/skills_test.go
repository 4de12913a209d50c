package parser

import (
	"reflect"
	"testing"

	"resumeparse/internal/types"
)

func TestParseTokenList(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "comma separated",
			lines:    []string{"Python, Go, Rust"},
			expected: []string{"Python", "Go", "Rust"},
		},
		{
			name:     "whitespace separated across lines",
			lines:    []string{"Python Go", "Rust"},
			expected: []string{"Python", "Go", "Rust"},
		},
		{
			name:     "single character tokens discarded",
			lines:    []string{"C, Go, R"},
			expected: []string{"Go"},
		},
		{
			name:     "dash tokens discarded",
			lines:    []string{"- Go, Rust"},
			expected: []string{"Go", "Rust"},
		},
		{
			name:     "no lines",
			lines:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTokenList(tt.lines)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseVolunteer(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "lines kept verbatim",
			lines:    []string{"Red Cross blood drive coordinator", "Animal shelter weekends"},
			expected: []string{"Red Cross blood drive coordinator", "Animal shelter weekends"},
		},
		{
			name:     "dash bullets skipped",
			lines:    []string{"- skipped", "Food bank volunteer"},
			expected: []string{"Food bank volunteer"},
		},
		{
			name:     "no lines",
			lines:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseVolunteer(tt.lines)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMergeAdditionalInfo(t *testing.T) {
	tests := []struct {
		name              string
		lines             []string
		expectedSkills    []string
		expectedInterests []string
		expectedVolunteer []string
	}{
		{
			name:              "volunteer label stripped",
			lines:             []string{"Volunteer: Red Cross coordinator"},
			expectedVolunteer: []string{"Red Cross coordinator"},
		},
		{
			name:           "skills label stripped and tokenized",
			lines:          []string{"Skills: Python, Go"},
			expectedSkills: []string{"Python", "Go"},
		},
		{
			name:              "plain line becomes an interest",
			lines:             []string{"Chess and hiking"},
			expectedInterests: []string{"Chess and hiking"},
		},
		{
			name:              "dash bullets skipped",
			lines:             []string{"- ignored"},
			expectedInterests: nil,
		},
		{
			name:              "mixed content routed by substring",
			lines:             []string{"Volunteer work at the shelter", "Skills: Terraform", "Photography"},
			expectedSkills:    []string{"Terraform"},
			expectedInterests: []string{"Photography"},
			expectedVolunteer: []string{"Volunteer work at the shelter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := types.ResumeRecord{}
			MergeAdditionalInfo(tt.lines, &record)

			if !reflect.DeepEqual(record.Skills, tt.expectedSkills) {
				t.Errorf("Expected skills %v, got %v", tt.expectedSkills, record.Skills)
			}
			if !reflect.DeepEqual(record.Interests, tt.expectedInterests) {
				t.Errorf("Expected interests %v, got %v", tt.expectedInterests, record.Interests)
			}
			if !reflect.DeepEqual(record.Volunteer, tt.expectedVolunteer) {
				t.Errorf("Expected volunteer %v, got %v", tt.expectedVolunteer, record.Volunteer)
			}
		})
	}
}

func TestMergeAdditionalInfoAppends(t *testing.T) {
	record := types.ResumeRecord{
		Skills:    []string{"Go"},
		Volunteer: []string{"Food bank"},
	}

	MergeAdditionalInfo([]string{"Skills: Rust", "Volunteer: Red Cross"}, &record)

	if !reflect.DeepEqual(record.Skills, []string{"Go", "Rust"}) {
		t.Errorf("Expected merged skills, got %v", record.Skills)
	}
	if !reflect.DeepEqual(record.Volunteer, []string{"Food bank", "Red Cross"}) {
		t.Errorf("Expected merged volunteer entries, got %v", record.Volunteer)
	}
}
