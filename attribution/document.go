package attribution

import (
	"strings"

	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/textlen"
)

// Link is a half-open span [Start, End) of a Document's text that renders as
// a link to URI. Units are those of the policy the document was built with.
type Link struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	URI   string `json:"uri"`
}

// Document is the citation text handed to a publisher.
type Document struct {
	Text    string  `json:"text"`
	Links   []Link  `json:"links"`
	Entries []Entry `json:"entries"`
}

// Render joins entries with newlines and truncates the result to maxLength
// under p. Links cut by the truncation are clamped to the remaining text;
// links that no longer have any visible text are dropped.
func Render(p textlen.Policy, entries []Entry, maxLength int) Document {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}

	text := textlen.Truncate(p, strings.Join(lines, separator), maxLength)
	textLength := p.Len(text)

	links := make([]Link, 0, len(entries))
	for _, e := range entries {
		span, ok := e.Span()
		if !ok || span.Start >= textLength {
			continue
		}
		if span.End > textLength {
			span.End = textLength
		}
		links = append(links, span)
	}

	return Document{
		Text:    text,
		Links:   links,
		Entries: entries,
	}
}

// Validate checks that every link lies inside the text, is non-empty and
// that links are ordered and disjoint.
func (d Document) Validate(p textlen.Policy) error {
	textLength := p.Len(d.Text)
	prevEnd := 0

	for i, l := range d.Links {
		if l.Start < prevEnd || l.Start >= l.End || l.End > textLength {
			return errors.NewInvalidRequestError("link %d [%d, %d) outside text of length %d", i, l.Start, l.End, textLength)
		}
		if l.URI == "" {
			return errors.NewInvalidRequestError("link %d has no uri", i)
		}
		prevEnd = l.End
	}
	return nil
}
