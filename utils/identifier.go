// Package utils provides utility functions for the application.
package utils

import (
	"regexp"
	"strings"
)

// uuidShapedRE matches the canonical UUID text form: 8-4-4-4-12 hex groups with a
// version nibble in 1..5 and a variant nibble in {8, 9, a, b}. Identifiers in any
// other UUID notation (braced, urn-prefixed) deliberately do not match.
var uuidShapedRE = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsUUIDShaped reports whether identifier looks like a document UUID.
// Case-insensitive, no side effects.
func IsUUIDShaped(identifier string) bool {
	return uuidShapedRE.MatchString(strings.ToLower(identifier))
}

var whitespaceRunRE = regexp.MustCompile(`\s+`)

// Slugify lowercases s and collapses whitespace runs to single dashes.
// This is the matching transform for social link titles: the stored title
// "My GitHub" resolves for the identifier "my-github".
func Slugify(s string) string {
	return whitespaceRunRE.ReplaceAllString(strings.ToLower(s), "-")
}

var nonAlnumRunRE = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug produces the canonical stored form of a document slug:
// lowercase, non-alphanumeric runs collapsed to dashes, no leading or
// trailing dash. Returns "" when nothing printable remains.
func NormalizeSlug(s string) string {
	slug := nonAlnumRunRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}
