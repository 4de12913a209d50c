package parser

import (
	"strings"

	"resumeparse/internal/types"
)

// ParseExperience turns experience section lines into entries. A line
// containing "|" opens a new entry and is split into up to 4 positional
// fields: company, date range, location, projects. Lines without "|"
// accumulate into the open entry's description, except dash bullets.
func ParseExperience(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	var current types.ExperienceEntry
	var description []string

	flush := func() {
		if current.Company == "" {
			return
		}
		current.Description = strings.Join(description, " ")
		entries = append(entries, current)
	}

	for _, line := range lines {
		if !strings.Contains(line, "|") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "-") {
				continue
			}
			if trimmed != "" {
				description = append(description, trimmed)
			}
			continue
		}

		flush()
		current = types.ExperienceEntry{}
		description = nil

		fields := strings.Split(line, "|")
		current.Company = strings.TrimSpace(fields[0])
		if len(fields) > 1 {
			current.StartDate, current.EndDate = parseDateRange(fields[1])
		}
		if len(fields) > 2 {
			current.Location = strings.TrimSpace(fields[2])
		}
		if len(fields) > 3 {
			current.Projects = strings.TrimSpace(fields[3])
		}
	}

	flush()
	return entries
}

// parseDateRange scans for MM/YYYY or bare YYYY tokens. The first token is
// the start date, the second the end date. A missing second token leaves
// the end date empty, which represents "present" or unstated; the literal
// word "present" in the range is the usual reason.
func parseDateRange(field string) (start, end string) {
	tokens := dateTokenPattern.FindAllString(field, 2)
	if len(tokens) > 0 {
		start = tokens[0]
	}
	if len(tokens) > 1 {
		end = tokens[1]
	}
	return start, end
}
