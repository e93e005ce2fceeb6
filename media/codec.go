package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/teranos/commons-repost/errors"
)

// Codec decodes, resizes and re-encodes images for the Scaler.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Resize(img image.Image, width, height int) image.Image
	Encode(img image.Image, quality int) ([]byte, error)
	// MIMEType is the media type Encode produces
	MIMEType() string
}

// JPEGCodec re-encodes to baseline JPEG and resamples with Catmull-Rom.
// Transparent pixels are flattened onto Background (white when nil).
type JPEGCodec struct {
	Background color.Color
}

// Decode decodes JPEG, PNG, GIF and WebP data.
func (c JPEGCodec) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrUnsupportedMedia, err.Error())
	}
	return img, nil
}

// Resize resamples img to exactly width × height.
func (c JPEGCodec) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Encode writes img as JPEG at quality.
func (c JPEGCodec) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, c.flatten(img), &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrapf(err, "failed to encode jpeg at quality %d", quality)
	}
	return buf.Bytes(), nil
}

// MIMEType returns "image/jpeg".
func (c JPEGCodec) MIMEType() string {
	return "image/jpeg"
}

// flatten composites img over the background; JPEG has no alpha channel.
func (c JPEGCodec) flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	bg := c.Background
	if bg == nil {
		bg = color.White
	}

	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
