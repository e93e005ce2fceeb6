package commons

import (
	"net/url"
	"strings"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/plaintext"
	"github.com/teranos/commons-repost/wikidate"
)

// descriptionSeparator joins object name and description
const descriptionSeparator = " – "

// Attribution builds the attribution source for the file: author from
// Artist, date from DateTimeOriginal falling back to DateTime, licence
// from LicenseShortName and the description page as source.
func (i ImageInfo) Attribution() (attribution.Source, error) {
	source, err := NormalizeURL(i.DescriptionURL)
	if err != nil {
		return attribution.Source{}, errors.Wrap(err, "description url")
	}

	src := attribution.Source{
		Author:    plaintext.Extract(i.Metadata[KeyArtist]),
		Date:      wikidate.Normalize(i.date()),
		Licence:   plaintext.Extract(i.Metadata[KeyLicenseShortName]),
		SourceURL: source,
	}

	if raw := i.Metadata[KeyLicenseURL]; raw != "" {
		licence, err := NormalizeURL(raw)
		if err != nil {
			return attribution.Source{}, errors.Wrap(err, "licence url")
		}
		src.LicenceURL = licence
	}

	return src, nil
}

func (i ImageInfo) date() string {
	if d, ok := i.Metadata[KeyDateTimeOriginal]; ok {
		return d
	}
	return i.Metadata[KeyDateTime]
}

// Description returns the plain-text post description: the object name and
// the image description joined by an en dash, whichever are present, or the
// file name when neither is.
func (i ImageInfo) Description() string {
	var parts []string
	for _, key := range []string{KeyObjectName, KeyImageDescription} {
		if text := plaintext.Extract(i.Metadata[key]); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return i.FileName
	}
	return strings.Join(parts, descriptionSeparator)
}

// NormalizeURL percent-encodes characters that may not appear in a URL
// and upgrades http and protocol-relative URLs to https. Existing escapes
// are kept.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidRequest, err.Error())
	}
	switch u.Scheme {
	case "https":
	case "http":
		u.Scheme = "https"
	default:
		return "", errors.NewInvalidRequestError("not a web url: %q", raw)
	}
	if u.Host == "" {
		return "", errors.NewInvalidRequestError("url has no host: %q", raw)
	}

	return u.String(), nil
}
