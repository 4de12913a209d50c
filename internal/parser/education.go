package parser

import (
	"strings"

	"resumeparse/internal/types"
)

// ParseEducation produces one entry per non-bullet line, split on "|" into
// institution, location, and a date field scanned for a 4-digit year.
// The GPA field stays empty: no current heuristic populates it.
func ParseEducation(lines []string) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}

		fields := strings.Split(trimmed, "|")
		entry := types.EducationEntry{
			Institution: strings.TrimSpace(fields[0]),
		}
		if len(fields) > 1 {
			entry.Location = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			entry.GraduationDate = yearPattern.FindString(fields[2])
		}
		entries = append(entries, entry)
	}
	return entries
}
