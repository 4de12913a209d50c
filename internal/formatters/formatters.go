package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumeparse/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeRecord", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeRecord", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "DocumentCheck", &CheckTextFormatter{})
	registry.RegisterFormatter("markdown", "DocumentCheck", &CheckMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeRecord:
		return "ResumeRecord"
	case types.DocumentCheck:
		return "DocumentCheck"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResumeTextFormatter handles text formatting for extracted resume records
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CONTACT ===\n")
	writeContactLines(&output, record.Contact, "%s: %s\n")
	output.WriteString("\n")

	output.WriteString("=== EXPERIENCE ===\n")
	if len(record.Experience) == 0 {
		output.WriteString("None found.\n")
	}
	for _, entry := range record.Experience {
		output.WriteString(entry.Company)
		output.WriteString(formatDateSpan(entry.StartDate, entry.EndDate))
		if entry.Location != "" {
			output.WriteString(" @ " + entry.Location)
		}
		output.WriteString("\n")
		if entry.Projects != "" {
			output.WriteString("  Projects: " + entry.Projects + "\n")
		}
		if entry.Description != "" {
			output.WriteString("  " + entry.Description + "\n")
		}
	}
	output.WriteString("\n")

	output.WriteString("=== EDUCATION ===\n")
	if len(record.Education) == 0 {
		output.WriteString("None found.\n")
	}
	for _, entry := range record.Education {
		output.WriteString(entry.Institution)
		if entry.Location != "" {
			output.WriteString(", " + entry.Location)
		}
		if entry.GraduationDate != "" {
			output.WriteString(" (" + entry.GraduationDate + ")")
		}
		output.WriteString("\n")
	}
	output.WriteString("\n")

	writeStringList(&output, "=== SKILLS ===\n", record.Skills)
	writeStringList(&output, "=== INTERESTS ===\n", record.Interests)
	writeStringList(&output, "=== VOLUNTEER ===\n", record.Volunteer)

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeRecord"
}

// ResumeMarkdownFormatter handles markdown formatting for extracted resume records
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Resume\n\n")
	output.WriteString("## Contact\n\n")
	writeContactLines(&output, record.Contact, "- **%s:** %s\n")
	output.WriteString("\n")

	output.WriteString("## Experience\n\n")
	if len(record.Experience) == 0 {
		output.WriteString("None found.\n\n")
	}
	for _, entry := range record.Experience {
		output.WriteString("### " + entry.Company)
		output.WriteString(formatDateSpan(entry.StartDate, entry.EndDate))
		output.WriteString("\n\n")
		if entry.Location != "" {
			output.WriteString("**Location:** " + entry.Location + "\n\n")
		}
		if entry.Projects != "" {
			output.WriteString("**Projects:** " + entry.Projects + "\n\n")
		}
		if entry.Description != "" {
			output.WriteString(entry.Description + "\n\n")
		}
	}

	output.WriteString("## Education\n\n")
	if len(record.Education) == 0 {
		output.WriteString("None found.\n\n")
	}
	for _, entry := range record.Education {
		output.WriteString("- " + entry.Institution)
		if entry.Location != "" {
			output.WriteString(", " + entry.Location)
		}
		if entry.GraduationDate != "" {
			output.WriteString(" (" + entry.GraduationDate + ")")
		}
		output.WriteString("\n")
	}
	output.WriteString("\n")

	writeMarkdownList(&output, "## Skills\n\n", record.Skills)
	writeMarkdownList(&output, "## Interests\n\n", record.Interests)
	writeMarkdownList(&output, "## Volunteer\n\n", record.Volunteer)

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeRecord"
}

// CheckTextFormatter handles text formatting for readability/compliance checks
type CheckTextFormatter struct{}

func (ctf *CheckTextFormatter) Format(data any) (string, error) {
	check, ok := data.(types.DocumentCheck)
	if !ok {
		return "", fmt.Errorf("expected DocumentCheck, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== DOCUMENT CHECK ===\n")
	output.WriteString(fmt.Sprintf("Readable: %t (%d words)\n", check.IsReadable, check.WordCount))
	output.WriteString(fmt.Sprintf("ATS Compliant: %t\n", check.Compliance.Compliant))

	if len(check.Compliance.Fields) > 0 {
		output.WriteString("\nCategories:\n")
		for _, category := range orderedCategories(check.Compliance.Fields) {
			mark := "MISSING"
			if check.Compliance.Fields[category] {
				mark = "ok"
			}
			output.WriteString(fmt.Sprintf("  %-16s %s\n", category, mark))
		}
	}

	return output.String(), nil
}

func (ctf *CheckTextFormatter) SupportedType() string {
	return "DocumentCheck"
}

// CheckMarkdownFormatter handles markdown formatting for readability/compliance checks
type CheckMarkdownFormatter struct{}

func (cmf *CheckMarkdownFormatter) Format(data any) (string, error) {
	check, ok := data.(types.DocumentCheck)
	if !ok {
		return "", fmt.Errorf("expected DocumentCheck, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Document Check\n\n")
	output.WriteString(fmt.Sprintf("- **Readable:** %t (%d words)\n", check.IsReadable, check.WordCount))
	output.WriteString(fmt.Sprintf("- **ATS Compliant:** %t\n\n", check.Compliance.Compliant))

	if len(check.Compliance.Fields) > 0 {
		output.WriteString("## Categories\n\n")
		output.WriteString("| Category | Present |\n|---|---|\n")
		for _, category := range orderedCategories(check.Compliance.Fields) {
			output.WriteString(fmt.Sprintf("| %s | %t |\n", category, check.Compliance.Fields[category]))
		}
	}

	return output.String(), nil
}

func (cmf *CheckMarkdownFormatter) SupportedType() string {
	return "DocumentCheck"
}

func writeContactLines(output *strings.Builder, contact types.ContactInfo, lineFormat string) {
	pairs := []struct{ label, value string }{
		{"Name", contact.FullName},
		{"Email", contact.Email},
		{"Phone", contact.Phone},
		{"Location", contact.Location},
		{"GitHub", contact.Links.GitHub},
		{"LinkedIn", contact.Links.LinkedIn},
		{"Portfolio", contact.Links.Portfolio},
	}
	for _, pair := range pairs {
		if pair.value != "" {
			output.WriteString(fmt.Sprintf(lineFormat, pair.label, pair.value))
		}
	}
}

func formatDateSpan(start, end string) string {
	if start == "" {
		return ""
	}
	if end == "" {
		return fmt.Sprintf(" (%s - present)", start)
	}
	return fmt.Sprintf(" (%s - %s)", start, end)
}

func writeStringList(output *strings.Builder, header string, items []string) {
	output.WriteString(header)
	if len(items) == 0 {
		output.WriteString("None found.\n")
	}
	for _, item := range items {
		output.WriteString("- " + item + "\n")
	}
	output.WriteString("\n")
}

func writeMarkdownList(output *strings.Builder, header string, items []string) {
	output.WriteString(header)
	if len(items) == 0 {
		output.WriteString("None found.\n")
	}
	for _, item := range items {
		output.WriteString("- " + item + "\n")
	}
	output.WriteString("\n")
}

// orderedCategories returns map keys in stable sorted order for output.
func orderedCategories(fields map[string]bool) []string {
	categories := make([]string, 0, len(fields))
	for category := range fields {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
