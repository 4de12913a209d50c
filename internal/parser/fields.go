package parser

import (
	"strings"

	"resumeparse/internal/types"
)

// ExtractEmail returns the first email address in the text, or an empty
// string when none matches.
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone tries the phone patterns in priority order and returns the
// first pattern's first match. Pattern order is the tie-break: an earlier,
// looser pattern wins over a later, stricter one.
func ExtractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

// ExtractName scans only the first scanLines lines and returns the first
// one that consists of nothing but two or more capitalized words.
func ExtractName(lines []string, scanLines int) string {
	limit := min(scanLines, len(lines))
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if namePattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

// ExtractLocation derives a location from the contact line: the first line
// containing an email or phone match. The line is split into tokens;
// tokens that are themselves emails, phones, URLs, or profile-host
// references, or that clean down to fewer than 3 characters, are
// discarded. Survivors are joined with ", ".
func ExtractLocation(lines []string) string {
	contactLine, ok := findContactLine(lines)
	if !ok {
		return ""
	}

	var parts []string
	for _, token := range contactTokenSplit.Split(contactLine, -1) {
		if token == "" || isContactArtifact(token) {
			continue
		}
		clean := strings.TrimSpace(tokenPunctuation.ReplaceAllString(token, ""))
		if len(clean) < 3 {
			continue
		}
		parts = append(parts, clean)
	}
	return strings.Join(parts, ", ")
}

func findContactLine(lines []string) (string, bool) {
	for _, line := range lines {
		if emailPattern.MatchString(line) || ExtractPhone(line) != "" {
			return line, true
		}
	}
	return "", false
}

func isContactArtifact(token string) bool {
	if emailPattern.MatchString(token) || urlPattern.MatchString(token) {
		return true
	}
	if ExtractPhone(token) != "" {
		return true
	}
	lower := strings.ToLower(token)
	return strings.Contains(lower, "github") || strings.Contains(lower, "linkedin")
}

// ExtractLinks scans the whole text for profile and portfolio URLs. Each
// link kind yields at most its first match.
func ExtractLinks(text string) types.ContactLinks {
	return types.ContactLinks{
		GitHub:    githubPattern.FindString(text),
		LinkedIn:  linkedinPattern.FindString(text),
		Portfolio: portfolioPattern.FindString(text),
	}
}
