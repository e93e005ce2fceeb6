package attribution

import (
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/textlen"
)

// Source is the attribution metadata of one Commons file.
// Empty fields are treated as absent.
type Source struct {
	Author     string `json:"author,omitempty"`
	Date       string `json:"date,omitempty"`
	Licence    string `json:"licence,omitempty"`
	LicenceURL string `json:"licence_url,omitempty"`
	SourceURL  string `json:"source_url"`
}

// Options parametrize composition for one destination.
type Options struct {
	// Policy counts text; nil means UTF-8 bytes
	Policy textlen.Policy
	// MaxLength is the hard cap of the whole document
	MaxLength int
	// EntryMaxLength caps each line except Source; 0 means no cap
	EntryMaxLength int
}

// Compose builds the citation for src: Author, Date, Licence (linked to its
// licence URL) and Source (linked to itself), in that order.
//
// The Source line is never entry-truncated. If it cannot fit within
// MaxLength on its own, Compose fails with ErrAttributionTooLong.
func Compose(src Source, opts Options) (Document, error) {
	p := opts.Policy
	if p == nil {
		p = textlen.UTF8Bytes{}
	}

	if opts.MaxLength <= 0 {
		return Document{}, errors.NewInvalidRequestError("max length must be > 0, got %d", opts.MaxLength)
	}
	if src.SourceURL == "" {
		return Document{}, errors.NewInvalidRequestError("attribution needs a source url")
	}

	if n := p.Len(LabelSource + ": " + src.SourceURL); n > opts.MaxLength {
		return Document{}, errors.WithDetailf(
			errors.Wrapf(errors.ErrAttributionTooLong, "source line needs %d of %d", n, opts.MaxLength),
			"Source: %s", src.SourceURL)
	}

	entries := NewEntries(p,
		EntrySpec{Label: LabelAuthor, Value: src.Author, MaxLength: opts.EntryMaxLength},
		EntrySpec{Label: LabelDate, Value: src.Date, MaxLength: opts.EntryMaxLength},
		EntrySpec{Label: LabelLicence, Value: src.Licence, MaxLength: opts.EntryMaxLength, Link: src.LicenceURL},
		EntrySpec{Label: LabelSource, Value: src.SourceURL, Link: src.SourceURL},
	)

	return Render(p, entries, opts.MaxLength), nil
}
