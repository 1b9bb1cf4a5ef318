package domain

import "strings"

// NormalizeUsername converts a typed name into the canonical account
// key: surrounding whitespace trimmed, lowercased. Display forms are
// stored separately and keep the original casing.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
