package game

import (
	"regexp"
	"strings"
)

var ordinalRe = regexp.MustCompile(`^\d+\s*[.)]\s*`)

// Parse turns free-form submission text into exactly expected answers,
// aligned to the round's category list. Lines shaped like "Animal: cat"
// or "3. cat" contribute the value part; any other non-empty line is used
// whole. Missing trailing answers degrade to empty strings, never errors.
func Parse(raw string, expected int) []string {
	answers := make([]string, 0, expected)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			line = strings.TrimSpace(line[idx+1:])
		} else {
			line = strings.TrimSpace(ordinalRe.ReplaceAllString(line, ""))
		}

		answers = append(answers, line)
		if len(answers) == expected {
			break
		}
	}

	for len(answers) < expected {
		answers = append(answers, "")
	}

	return answers
}

// LooksLikeSubmission reports whether a chat message is shaped like an
// answer list: at least expected lines carrying a label delimiter or a
// leading ordinal. Plain conversation does not qualify and must not be
// swallowed as a submission.
func LooksLikeSubmission(raw string, expected int) bool {
	if expected <= 0 {
		return false
	}

	var shaped int
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ":") || ordinalRe.MatchString(line) {
			shaped++
		}
	}

	return shaped >= expected
}
