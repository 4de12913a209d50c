package parser

import (
	"strings"

	"resumeparse/internal/types"
)

// ComplianceCategories lists the 9 field categories an ATS expects, in
// report order. Every category must pass for the document to be compliant.
var ComplianceCategories = []string{
	"full_name",
	"email",
	"phone",
	"education",
	"work_experience",
	"skills",
	"location",
	"interests",
	"volunteer",
}

// CheckCompliance evaluates each category against the document and ANDs
// the results. Education, work experience, and skills require both a
// recognized all-caps section title and supporting keywords in the body
// text; the remaining categories use single heuristic detectors.
func CheckCompliance(doc *Document) types.ComplianceReport {
	fields := make(map[string]bool, len(ComplianceCategories))
	lower := strings.ToLower(doc.Text)

	fields["full_name"] = hasFullName(doc.Lines)
	fields["email"] = emailPattern.MatchString(doc.Text)
	fields["phone"] = ExtractPhone(doc.Text) != ""
	fields["education"] = hasSectionTitle(doc.Lines, educationTitles) && containsAny(lower, educationKeywords)
	fields["work_experience"] = hasSectionTitle(doc.Lines, experienceTitles) && containsAny(lower, experienceKeywords)
	fields["skills"] = hasSectionTitle(doc.Lines, skillsTitles) && containsAny(lower, skillsKeywords)
	fields["location"] = containsAny(lower, locationKeywords) || ExtractLocation(doc.Lines) != ""
	fields["interests"] = containsAny(lower, interestsKeywords)
	fields["volunteer"] = containsAny(lower, volunteerKeywords)

	compliant := true
	for _, category := range ComplianceCategories {
		if !fields[category] {
			compliant = false
			break
		}
	}

	return types.ComplianceReport{
		Compliant: compliant,
		Fields:    fields,
	}
}

// hasSectionTitle reports whether some line is, after trimming, exactly
// one of the given all-caps section titles.
func hasSectionTitle(lines []string, titles []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, title := range titles {
			if trimmed == title {
				return true
			}
		}
	}
	return false
}

// hasFullName is a loose presence check: any line carrying two or more
// capitalized words counts. It is intentionally weaker than ExtractName,
// which demands the line contain nothing else.
func hasFullName(lines []string) bool {
	for _, line := range lines {
		if len(capitalizedWordPattern.FindAllString(line, 2)) >= 2 {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
