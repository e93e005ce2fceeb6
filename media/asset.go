// Package media scales images onto the pixel and byte ceilings of a
// destination.
package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"github.com/teranos/commons-repost/errors"
)

// ImageAsset is an encoded image with its dimensions. Scaling never mutates
// an asset; it returns a new one.
type ImageAsset struct {
	Data     []byte
	Width    int
	Height   int
	MIMEType string
}

// NewImageAsset reads the dimensions and media type of encoded image bytes.
func NewImageAsset(data []byte) (ImageAsset, error) {
	if len(data) == 0 {
		return ImageAsset{}, errors.NewUnsupportedMediaError("empty image")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		mt := mimetype.Detect(data)
		return ImageAsset{}, errors.WithDetailf(
			errors.Wrap(errors.ErrUnsupportedMedia, err.Error()),
			"detected media type %s", mt.String())
	}

	mime := mimetype.Detect(data).String()
	if mime == "application/octet-stream" {
		mime = "image/" + format
	}

	return ImageAsset{
		Data:     data,
		Width:    cfg.Width,
		Height:   cfg.Height,
		MIMEType: mime,
	}, nil
}

// Size returns the encoded size in bytes.
func (a ImageAsset) Size() int {
	return len(a.Data)
}

// Pixels returns width × height.
func (a ImageAsset) Pixels() int {
	return a.Width * a.Height
}
