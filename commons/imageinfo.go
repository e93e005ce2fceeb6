// Package commons reads Wikimedia Commons image-info responses
// (action=query&prop=imageinfo&iiprop=extmetadata|size|url|mime) and turns
// them into attribution sources and post descriptions.
package commons

import (
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"

	"github.com/teranos/commons-repost/errors"
)

// MaxSourceBytes is the largest original Commons file accepted for reposting.
const MaxSourceBytes = 5 * 1024 * 1024

// AllowedMediaTypes lists the source media types accepted for reposting.
var AllowedMediaTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Extended metadata keys read from extmetadata
const (
	KeyArtist           = "Artist"
	KeyImageDescription = "ImageDescription"
	KeyObjectName       = "ObjectName"
	KeyDateTimeOriginal = "DateTimeOriginal"
	KeyDateTime         = "DateTime"
	KeyLicenseShortName = "LicenseShortName"
	KeyLicenseURL       = "LicenseUrl"
	KeyUsageTerms       = "UsageTerms"
)

// ImageInfo is the single image-info object of a Commons file page.
type ImageInfo struct {
	Title          string
	FileName       string
	Size           int
	Width          int
	Height         int
	URL            string
	DescriptionURL string
	MIMEType       string

	// Metadata holds the raw extmetadata values, markup included
	Metadata map[string]string
}

// ParseImageInfo extracts the image info from a query response. Both the
// array (formatversion=2) and object keyed by page id (formatversion=1)
// shapes of query.pages are accepted.
//
// The response must describe exactly one page carrying exactly one
// image-info object.
func ParseImageInfo(data []byte) (ImageInfo, error) {
	if !gjson.ValidBytes(data) {
		return ImageInfo{}, errors.NewInvalidRequestError("image info response is not valid JSON")
	}

	pages := collect(gjson.GetBytes(data, "query.pages"))
	if len(pages) != 1 {
		return ImageInfo{}, errors.WithDetailf(
			errors.NewInvalidRequestError("non-unique image info: %d pages", len(pages)),
			"expected exactly one page in query.pages")
	}
	page := pages[0]

	if page.Get("missing").Exists() {
		return ImageInfo{}, errors.NewInvalidRequestError("file page %q does not exist", page.Get("title").String())
	}

	infos := collect(page.Get("imageinfo"))
	if len(infos) != 1 {
		return ImageInfo{}, errors.WithDetailf(
			errors.NewInvalidRequestError("non-unique image info: %d info objects", len(infos)),
			"page %q", page.Get("title").String())
	}
	raw := infos[0]

	info := ImageInfo{
		Title:          page.Get("title").String(),
		Size:           int(raw.Get("size").Int()),
		Width:          int(raw.Get("width").Int()),
		Height:         int(raw.Get("height").Int()),
		URL:            raw.Get("url").String(),
		DescriptionURL: raw.Get("descriptionurl").String(),
		MIMEType:       raw.Get("mime").String(),
		Metadata:       make(map[string]string),
	}
	raw.Get("extmetadata").ForEach(func(key, value gjson.Result) bool {
		info.Metadata[key.String()] = value.Get("value").String()
		return true
	})
	info.FileName = fileName(info.Title, info.DescriptionURL)

	return info, nil
}

// Limits bounds which Commons files are accepted for reposting.
type Limits struct {
	MaxSourceBytes int
	MediaTypes     []string
}

// DefaultLimits returns MaxSourceBytes and AllowedMediaTypes.
func DefaultLimits() Limits {
	return Limits{MaxSourceBytes: MaxSourceBytes, MediaTypes: AllowedMediaTypes}
}

// Validate checks i against DefaultLimits.
func (i ImageInfo) Validate() error {
	return i.ValidateLimits(DefaultLimits())
}

// ValidateLimits rejects files that are too large or of a media type that
// cannot be reposted. A missing mime field is not checked here; callers
// check the fetched bytes with Limits.CheckMediaType instead. Zero limits
// fall back to the defaults.
func (i ImageInfo) ValidateLimits(l Limits) error {
	l = l.withDefaults()

	if i.URL == "" {
		return errors.NewInvalidRequestError("image info has no file url")
	}
	if i.DescriptionURL == "" {
		return errors.NewInvalidRequestError("image info has no description url")
	}
	if i.Size > l.MaxSourceBytes {
		return errors.WithHintf(
			errors.NewUnsupportedMediaError("image is too large: %d bytes", i.Size),
			"files above %d bytes are skipped", l.MaxSourceBytes)
	}
	if i.MIMEType != "" {
		return l.CheckMediaType(i.MIMEType)
	}
	return nil
}

// CheckMediaType reports whether mediaType is one of AllowedMediaTypes.
// Parameters such as charset are ignored.
func CheckMediaType(mediaType string) error {
	return DefaultLimits().CheckMediaType(mediaType)
}

// CheckMediaType reports whether mediaType is one of l.MediaTypes.
func (l Limits) CheckMediaType(mediaType string) error {
	l = l.withDefaults()
	if mimetype.EqualsAny(mediaType, l.MediaTypes...) {
		return nil
	}
	return errors.NewUnsupportedMediaError("image is not a known media type: %s", mediaType)
}

func (l Limits) withDefaults() Limits {
	if l.MaxSourceBytes <= 0 {
		l.MaxSourceBytes = MaxSourceBytes
	}
	if len(l.MediaTypes) == 0 {
		l.MediaTypes = AllowedMediaTypes
	}
	return l
}

func collect(r gjson.Result) []gjson.Result {
	var out []gjson.Result
	r.ForEach(func(_, value gjson.Result) bool {
		out = append(out, value)
		return true
	})
	return out
}

// fileName derives "Example.jpg" from "File:Example.jpg" or from the last
// segment of the description URL.
func fileName(title, descriptionURL string) string {
	name := title
	if name == "" && descriptionURL != "" {
		name = path.Base(descriptionURL)
		if u, err := url.Parse(descriptionURL); err == nil {
			name = path.Base(u.Path)
		}
	}
	return strings.TrimPrefix(name, "File:")
}
