// Package textlen measures text the way a destination platform counts it.
//
// Truncation budgets and link-span offsets must use the same metric the
// destination uses internally, otherwise emitted spans drift away from the
// text the destination renders.
package textlen

import (
	"regexp"
	"unicode/utf8"

	"github.com/teranos/commons-repost/errors"
)

// DefaultURLLength is the fixed cost of a link under link-shortening platforms
const DefaultURLLength = 23

// Policy names accepted by ByName
const (
	NameBytes         = "bytes"
	NameLinkShortened = "link-shortened"
	NameRunes         = "runes"
)

// Policy computes the counted length of a string for one platform.
type Policy interface {
	Len(s string) int
}

// UTF8Bytes counts the UTF-8 byte length of the text.
type UTF8Bytes struct{}

// Len returns len(s).
func (UTF8Bytes) Len(s string) int {
	return len(s)
}

// Runes counts Unicode code points. Post descriptions and alt text are
// capped in characters rather than bytes.
type Runes struct{}

// Len returns utf8.RuneCountInString(s).
func (Runes) Len(s string) int {
	return utf8.RuneCountInString(s)
}

// LinkShortened counts every URL as URLLength units and the rest as UTF-8 bytes.
type LinkShortened struct {
	URLLength int
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Len returns the counted length of s.
func (p LinkShortened) Len(s string) int {
	urlLength := p.URLLength
	if urlLength <= 0 {
		urlLength = DefaultURLLength
	}

	n := len(s)
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		n += urlLength - (loc[1] - loc[0])
	}
	return n
}

// ByName returns the policy registered under name.
func ByName(name string) (Policy, error) {
	switch name {
	case NameBytes, "":
		return UTF8Bytes{}, nil
	case NameLinkShortened:
		return LinkShortened{URLLength: DefaultURLLength}, nil
	case NameRunes:
		return Runes{}, nil
	}
	return nil, errors.NewInvalidRequestError("unknown length policy %q (want %q, %q or %q)", name, NameBytes, NameLinkShortened, NameRunes)
}

// Truncate returns the longest prefix of s, cut on a rune boundary, whose
// counted length under p does not exceed max.
//
// The counted length of a prefix is not monotonic under LinkShortened (a
// URL jumps to its fixed cost once "https://" is complete), so prefixes are
// tried from the longest down.
func Truncate(p Policy, s string, max int) string {
	if max <= 0 {
		return ""
	}
	if p.Len(s) <= max {
		return s
	}

	end := len(s) - 1
	switch p.(type) {
	case UTF8Bytes:
		end = max
	case Runes:
		end = runeOffset(s, max)
	}
	for end > 0 {
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		if p.Len(s[:end]) <= max {
			return s[:end]
		}
		end--
	}
	return ""
}

// runeOffset returns the byte offset of the n-th rune of s, or len(s)
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
