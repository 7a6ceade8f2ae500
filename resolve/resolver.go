// Package resolve turns ambiguous follow-up references ("2", "milk") into a
// single candidate from the most recent listing snapshot, and owns the
// snapshot slot encoding itself.
package resolve

import (
	"strconv"
	"strings"

	"github.com/delivio/actionserver/commerce"
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Match picks at most one candidate for the given user text.
//
// The text is trimmed and lowercased, then matched in two ordered steps:
// an all-digits text is a 1-based ordinal into the snapshot; out-of-range
// ordinals and everything else fall through to the first candidate whose
// display name contains the text case-insensitively. Snapshot order breaks
// ties — first match wins, deterministically. No fuzzy matching.
func Match(text string, candidates []commerce.Record) (commerce.Record, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || len(candidates) == 0 {
		return nil, false
	}

	if isDigits(needle) {
		n, err := strconv.Atoi(needle)
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		// Out-of-range ordinals fall through to the substring scan.
	}

	for _, candidate := range candidates {
		name := strings.ToLower(candidate.DisplayName())
		if name != "" && strings.Contains(name, needle) {
			return candidate, true
		}
	}

	return nil, false
}
