package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail canonicalizes a user-typed email address: Unicode NFKD
// normalization, surrounding whitespace stripped, lowercased. The backend
// matches accounts case-insensitively, so the console normalizes once at
// the boundary instead of at every call site.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKD.String(s)))
}
