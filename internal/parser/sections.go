package parser

import "strings"

// segmenter state: either outside any section or inside one kind.
type segmenterState int

const (
	stateNoSection segmenterState = iota
	stateInSection
)

// SegmentSections partitions document lines into named section bodies.
// It runs a small state machine: a line containing a trigger phrase opens
// a section of that kind (closing the previous one); an all-caps short
// header for an unmodeled section closes the current section without
// opening another; everything else is body text for the active section.
// Lines outside any section are dropped.
func SegmentSections(lines []string) map[SectionKind][]string {
	sections := make(map[SectionKind][]string)

	state := stateNoSection
	var current SectionKind
	var body []string

	closeCurrent := func() {
		if state == stateInSection {
			sections[current] = append(sections[current], body...)
		}
		body = nil
		state = stateNoSection
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || isSeparatorLine(line) {
			continue
		}

		if kind, ok := matchSectionTrigger(line); ok {
			closeCurrent()
			state = stateInSection
			current = kind
			continue
		}

		if state == stateInSection && isUnrecognizedHeader(line) {
			// Boundary of a section we do not model. The header line
			// itself is dropped, not reused as body text.
			closeCurrent()
			continue
		}

		if state == stateInSection {
			body = append(body, line)
		}
	}

	closeCurrent()
	return sections
}

// isSeparatorLine reports dash rules like "----------------".
func isSeparatorLine(line string) bool {
	return len(line) > 10 && strings.HasPrefix(line, "-")
}

// matchSectionTrigger returns the first kind in table order whose phrases
// include a case-insensitive substring of the line.
func matchSectionTrigger(line string) (SectionKind, bool) {
	lower := strings.ToLower(line)
	for _, trigger := range SectionTriggers {
		for _, phrase := range trigger.Phrases {
			if strings.Contains(lower, phrase) {
				return trigger.Kind, true
			}
		}
	}
	return "", false
}

// isUnrecognizedHeader reports short all-caps lines that name a section
// kind the segmenter does not model, e.g. "PROJECTS" or "CERTIFICATIONS".
func isUnrecognizedHeader(line string) bool {
	if len(strings.Fields(line)) > 3 {
		return false
	}
	if line != strings.ToUpper(line) || !strings.ContainsFunc(line, isLetter) {
		return false
	}
	lower := strings.ToLower(line)
	for _, word := range headerBoundaryWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
