// Package search matches player names against a user query, tolerating typos.
package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match reports whether name satisfies term. An empty term matches nothing,
// so callers can treat "no query" as "no highlight".
func Match(name, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	n := strings.ToLower(name)
	if strings.Contains(n, term) {
		return true
	}
	return levenshtein.ComputeDistance(n, term) <= limit(len([]rune(term)))
}

// limit scales the allowed edit distance with the query length; very short
// queries must match exactly.
func limit(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 8:
		return 1
	default:
		return 2
	}
}

// Mask evaluates Match over names.
func Mask(names []string, term string) []bool {
	out := make([]bool, len(names))
	for i, n := range names {
		out[i] = Match(n, term)
	}
	return out
}
