// Package wikidate turns Commons date metadata into one display date.
//
// A Commons date value is free text that may embed a machine-readable
// declaration, e.g.
//
//	1797 date QS:P571,+1797-00-00T00:00:00Z/9
//
// Everything before the "date QS:" marker is the text part; the declaration
// after the property token is the structured part. Both are rendered and
// merged into a single string such as "1797" or "May 1797".
package wikidate

import (
	"regexp"
	"strings"
	"time"

	"github.com/teranos/commons-repost/plaintext"
)

const marker = "date QS:"

// DisplayLayout is the "21 April 2014" form used for every full date
const DisplayLayout = "2 January 2006"

// isoDateLayouts are tried in order once the text part looks like YYYY-MM-DD
var isoDateLayouts = []string{
	time.RFC3339,          // "2014-04-21T11:54:46Z"
	"2006-01-02T15:04:05", // "2014-04-21T11:54:46"
	"2006-01-02 15:04:05", // "2014-04-21 11:54:46" (EXIF style)
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	yearMonth     = regexp.MustCompile(`^(\d{1,4})-(\d{1,2})$`)
)

// Normalize renders a raw Commons date value for display.
//
// Markup is stripped first. A declaration without a year is ignored and the
// text part is rendered on its own.
func Normalize(raw string) string {
	s := plaintext.Extract(raw)

	text, structured, found := split(s)
	if !found {
		return renderText(text)
	}
	if structured == "" {
		return renderText(text)
	}

	d, err := ParseStructured(structured)
	if err != nil {
		return renderText(text)
	}

	return merge(renderText(text), d.String())
}

// split separates the text part from the structured declaration. The
// declaration starts after the first comma following the marker.
func split(s string) (text, structured string, found bool) {
	i := strings.Index(s, marker)
	if i < 0 {
		return strings.TrimSpace(s), "", false
	}

	text = strings.TrimSpace(s[:i])
	rest := s[i+len(marker):]

	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return text, "", true
	}
	return text, strings.TrimSpace(rest[comma+1:]), true
}

// merge drops duplicate or empty renderings.
func merge(text, structured string) string {
	switch {
	case text == structured, text == "":
		return structured
	case structured == "":
		return text
	}
	return text + " " + structured
}

// renderText reformats ISO calendar dates and year-month pairs; anything
// else passes through with normalized whitespace.
func renderText(text string) string {
	text = plaintext.NormalizeSpace(text)

	if isoDatePrefix.MatchString(text) {
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format(DisplayLayout)
			}
		}
		return text
	}

	if m := yearMonth.FindStringSubmatch(text); m != nil {
		return monthName(atoi(m[2])) + " " + m[1]
	}

	return text
}
