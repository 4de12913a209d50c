package parser

import (
	"strings"

	"resumeparse/internal/types"
)

// ParseTokenList handles the skills and interests sections: body lines are
// joined with spaces, split on commas or runs of whitespace, and cleaned.
// Tokens shorter than 2 characters or starting with "-" are discarded.
func ParseTokenList(lines []string) []string {
	joined := strings.Join(lines, " ")

	var tokens []string
	for _, token := range skillTokenSplit.Split(joined, -1) {
		if len(token) < 2 || strings.HasPrefix(token, "-") {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ParseVolunteer keeps each non-bullet line verbatim.
func ParseVolunteer(lines []string) []string {
	var entries []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}
		entries = append(entries, trimmed)
	}
	return entries
}

// MergeAdditionalInfo folds catch-all section lines into the record.
// Lines mentioning volunteering or skills are routed to those lists,
// label prefixes stripped; everything else counts as an interest. Routed
// content appends to whatever the dedicated sections already produced.
func MergeAdditionalInfo(lines []string, record *types.ResumeRecord) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}

		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "volunteer"):
			entry := strings.TrimSpace(volunteerLabelPrefix.ReplaceAllString(trimmed, ""))
			if entry != "" {
				record.Volunteer = append(record.Volunteer, entry)
			}
		case strings.Contains(lower, "skills"):
			stripped := skillsLabelPrefix.ReplaceAllString(trimmed, "")
			record.Skills = append(record.Skills, ParseTokenList([]string{stripped})...)
		default:
			record.Interests = append(record.Interests, trimmed)
		}
	}
}
