package parser

import (
	"reflect"
	"strings"
	"testing"

	apperrors "resumeparse/internal/errors"
)

const sampleResume = `John Smith
john@example.com | Berlin | +14155550134
https://github.com/jsmith https://linkedin.com/in/jsmith
WORK EXPERIENCE
Acme Corp | 01/2020 - 12/2022 | Remote | ProjectX
Did great things
EDUCATION
MIT | Cambridge | 2019
SKILLS
Python, Go, Rust
INTERESTS
Chess, hiking
VOLUNTEER
Red Cross blood drive coordinator`

func TestPipelineExtract(t *testing.T) {
	p := New(Options{})

	record, err := p.Extract(sampleResume)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if record.Contact.FullName != "John Smith" {
		t.Errorf("Expected full name, got %q", record.Contact.FullName)
	}
	if record.Contact.Email != "john@example.com" {
		t.Errorf("Expected email, got %q", record.Contact.Email)
	}
	if record.Contact.Phone != "+14155550134" {
		t.Errorf("Expected phone, got %q", record.Contact.Phone)
	}
	if record.Contact.Location != "Berlin" {
		t.Errorf("Expected location, got %q", record.Contact.Location)
	}
	if record.Contact.Links.GitHub != "https://github.com/jsmith" {
		t.Errorf("Expected github link, got %q", record.Contact.Links.GitHub)
	}

	if len(record.Experience) != 1 {
		t.Fatalf("Expected 1 experience entry, got %d", len(record.Experience))
	}
	exp := record.Experience[0]
	if exp.Company != "Acme Corp" || exp.StartDate != "01/2020" || exp.EndDate != "12/2022" {
		t.Errorf("Unexpected experience entry: %+v", exp)
	}
	if !strings.Contains(exp.Description, "Did great things") {
		t.Errorf("Expected description to carry body lines, got %q", exp.Description)
	}

	if len(record.Education) != 1 || record.Education[0].Institution != "MIT" {
		t.Errorf("Unexpected education entries: %+v", record.Education)
	}
	if !reflect.DeepEqual(record.Skills, []string{"Python", "Go", "Rust"}) {
		t.Errorf("Unexpected skills: %v", record.Skills)
	}
	if !reflect.DeepEqual(record.Volunteer, []string{"Red Cross blood drive coordinator"}) {
		t.Errorf("Unexpected volunteer entries: %v", record.Volunteer)
	}
}

func TestPipelineExtractIdempotent(t *testing.T) {
	p := New(Options{})

	first, err := p.Extract(sampleResume)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	second, err := p.Extract(sampleResume)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output for identical input")
	}
}

func TestPipelineExtractEmptyDocument(t *testing.T) {
	p := New(Options{})

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Extract(tt.text)
			if err == nil {
				t.Fatalf("Expected error but got none")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Code != apperrors.ErrCodeEmptyDocument {
				t.Errorf("Expected code %q, got %q", apperrors.ErrCodeEmptyDocument, appErr.Code)
			}
		})
	}
}

func TestPipelineExtractMissingFieldsDegrade(t *testing.T) {
	p := New(Options{})

	record, err := p.Extract("some unstructured text without any resume markers")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if record.Contact.Email != "" || record.Contact.Phone != "" {
		t.Errorf("Expected empty contact fields, got %+v", record.Contact)
	}
	if len(record.Experience) != 0 || len(record.Education) != 0 {
		t.Errorf("Expected empty sections, got %+v", record)
	}
	if record.Skills == nil || record.Interests == nil || record.Volunteer == nil {
		t.Errorf("Expected empty (non-nil) lists")
	}
}

func TestPipelineCheckUnreadable(t *testing.T) {
	p := New(Options{})

	check := p.Check("too few words here")

	if check.IsReadable {
		t.Errorf("Expected unreadable document")
	}
	if check.Compliance.Compliant {
		t.Errorf("Expected compliance to fail for unreadable document")
	}
	if len(check.Compliance.Fields) != 0 {
		t.Errorf("Expected empty fields map, got %v", check.Compliance.Fields)
	}
	if check.WordCount != 4 {
		t.Errorf("Expected word count 4, got %d", check.WordCount)
	}
}

func TestPipelineCheckReadable(t *testing.T) {
	// Pad the sample above the 50-word threshold.
	text := sampleResume + "\n" + strings.Repeat("additional profile detail text ", 15)

	p := New(Options{})
	check := p.Check(text)

	if !check.IsReadable {
		t.Fatalf("Expected readable document, word count %d", check.WordCount)
	}
	if len(check.Compliance.Fields) != len(ComplianceCategories) {
		t.Errorf("Expected all categories evaluated, got %v", check.Compliance.Fields)
	}
}

func TestPipelineCheckThresholdOverride(t *testing.T) {
	p := New(Options{MinWords: 3})

	if check := p.Check("one two three"); check.IsReadable {
		t.Errorf("Expected exactly-threshold word count to stay unreadable")
	}
	if check := p.Check("one two three four"); !check.IsReadable {
		t.Errorf("Expected above-threshold word count to be readable")
	}
}

// Check and Document must agree on word counting; readability verdicts
// hinge on that single definition.
func TestPipelineCheckWordCountMatchesDocument(t *testing.T) {
	text := "one  two\tthree\nfour   five\n\nsix"
	p := New(Options{MinWords: 3})

	check := p.Check(text)
	doc := &Document{Text: text, Lines: strings.Split(text, "\n")}

	if check.WordCount != doc.WordCount() {
		t.Errorf("Expected Check word count %d to match document word count %d",
			check.WordCount, doc.WordCount())
	}
	if check.WordCount != 6 {
		t.Errorf("Expected 6 whitespace-delimited words, got %d", check.WordCount)
	}
}

func TestPipelineExtractPages(t *testing.T) {
	p := New(Options{})

	record, err := p.ExtractPages([]string{"John Smith\njohn@example.com", "", "SKILLS\nGo, Rust"})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if record.Contact.Email != "john@example.com" {
		t.Errorf("Expected email from first page, got %q", record.Contact.Email)
	}
	if !reflect.DeepEqual(record.Skills, []string{"Go", "Rust"}) {
		t.Errorf("Expected skills from last page, got %v", record.Skills)
	}
}

func TestStats(t *testing.T) {
	stats := Stats([]string{"one two", "", "three"})
	if stats.Pages != 3 {
		t.Errorf("Expected 3 pages, got %d", stats.Pages)
	}
	if stats.Words != 3 {
		t.Errorf("Expected 3 words, got %d", stats.Words)
	}
}

func BenchmarkPipelineExtract(b *testing.B) {
	p := New(Options{})

	for b.Loop() {
		_, _ = p.Extract(sampleResume)
	}
}
