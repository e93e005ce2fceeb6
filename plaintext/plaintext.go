// Package plaintext reduces Commons HTML snippets to single-line plain text.
package plaintext

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict drops every tag and skips the content of script and style
	strict = bluemonday.StrictPolicy()

	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Extract strips markup from s, turns line breaks into spaces and collapses
// runs of whitespace.
func Extract(s string) string {
	if s == "" {
		return ""
	}

	s = lineBreak.ReplaceAllString(s, "\n")
	s = html.UnescapeString(strict.Sanitize(s))

	return NormalizeSpace(s)
}

// NormalizeSpace collapses every whitespace run to one space and trims the ends.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
