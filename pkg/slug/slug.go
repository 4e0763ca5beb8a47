// Package slug turns titles into URL path segments.
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	dashes     = regexp.MustCompile(`-+`)
)

// Make lowercases title, turns whitespace runs into single dashes, drops
// everything outside [a-z0-9-], collapses repeated dashes and trims dashes
// at both ends. The result is not guaranteed to be unique.
func Make(title string) string {
	s := strings.ToLower(title)
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
