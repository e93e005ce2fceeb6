// Package attribution composes the citation posted alongside a Commons image.
//
// A citation is a list of "Label: value" lines. Offsets and link spans are
// expressed in the units of a textlen.Policy so they line up with the way
// the destination counts its own text (bytes for Bluesky facets, shortened
// links for Mastodon).
package attribution

import (
	"github.com/teranos/commons-repost/textlen"
)

// Entry labels in citation order
const (
	LabelAuthor  = "Author"
	LabelDate    = "Date"
	LabelLicence = "Licence"
	LabelSource  = "Source"
)

// separator joins entries; it always counts as one unit
const separator = "\n"

// EntrySpec describes one citation line before layout.
type EntrySpec struct {
	Label string
	Value string
	// MaxLength caps the rendered "Label: value" line; 0 means no cap
	MaxLength int
	// Link is the URI the visible value points at, if any
	Link string
}

// Entry is one laid-out citation line.
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Text is the rendered line, possibly truncated
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Link   string `json:"link,omitempty"`

	// valueLength is the counted length of the part of Value still visible in Text
	valueLength int
}

// Span returns the link span anchoring the visible value. The label is never
// part of the span.
func (e Entry) Span() (Link, bool) {
	if e.Link == "" || e.valueLength == 0 {
		return Link{}, false
	}
	end := e.Offset + e.Length
	return Link{Start: end - e.valueLength, End: end, URI: e.Link}, true
}

// NewEntries lays out specs in order. Specs with an empty value are dropped
// and take no offset. Each entry starts one separator unit after the
// previous one ends.
func NewEntries(p textlen.Policy, specs ...EntrySpec) []Entry {
	entries := make([]Entry, 0, len(specs))

	for _, spec := range specs {
		if spec.Value == "" {
			continue
		}

		prefix := spec.Label + ": "
		text := prefix + spec.Value
		if spec.MaxLength > 0 {
			text = textlen.Truncate(p, text, spec.MaxLength)
		}

		offset := 0
		if n := len(entries); n > 0 {
			prev := entries[n-1]
			offset = prev.Offset + prev.Length + len(separator)
		}

		var valueLength int
		if len(text) > len(prefix) {
			valueLength = p.Len(text[len(prefix):])
		}

		entries = append(entries, Entry{
			Label:       spec.Label,
			Value:       spec.Value,
			Text:        text,
			Offset:      offset,
			Length:      p.Len(text),
			Link:        spec.Link,
			valueLength: valueLength,
		})
	}

	return entries
}
