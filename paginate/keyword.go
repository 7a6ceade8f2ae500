package paginate

import (
	"regexp"
	"strings"
)

// Trigger phrases that introduce a search keyword in free text. Longer
// phrases come first so "search for milk" strips the whole phrase, not just
// "search".
var keywordPattern = regexp.MustCompile(
	`(?i)(?:show me|show|search for|find|get|i want|can i have|need)\s+([\w\s]+)`,
)

// ExtractKeyword pulls the search keyword out of free text: the remainder
// after a trigger phrase, or the whole input verbatim when no trigger
// matches. Best-effort heuristic — malformed phrasing passes through
// unchanged.
func ExtractKeyword(text string) string {
	match := keywordPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(match[1])
}
