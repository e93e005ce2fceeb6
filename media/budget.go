package media

import (
	"math"

	"github.com/teranos/commons-repost/errors"
)

// Quality ladder defaults
const (
	DefaultStartQuality = 90
	DefaultQualityStep  = 5
	DefaultQualityFloor = 5
)

// ScaleBudget is the per-destination ceiling an image must satisfy.
//
// MaxWidth/MaxHeight bound each side ("fit inside"); MaxPixels bounds
// width × height. Zero disables a bound. MaxBytes is mandatory.
type ScaleBudget struct {
	MaxWidth     int
	MaxHeight    int
	MaxPixels    int
	MaxBytes     int
	StartQuality int
	QualityStep  int
	QualityFloor int
}

// BlueskyBudget fits 1000×1000 and the blob size Bluesky accepts
var BlueskyBudget = ScaleBudget{
	MaxWidth:     1000,
	MaxHeight:    1000,
	MaxBytes:     976_560,
	StartQuality: DefaultStartQuality,
	QualityStep:  DefaultQualityStep,
	QualityFloor: DefaultQualityFloor,
}

// MastodonBudget caps the pixel count at 8 megapixels and the file at 16 MiB
var MastodonBudget = ScaleBudget{
	MaxPixels:    8_388_608,
	MaxBytes:     16 * 1024 * 1024,
	StartQuality: DefaultStartQuality,
	QualityStep:  DefaultQualityStep,
	QualityFloor: DefaultQualityFloor,
}

// WithDefaults fills an unset quality ladder.
func (b ScaleBudget) WithDefaults() ScaleBudget {
	if b.StartQuality == 0 {
		b.StartQuality = DefaultStartQuality
	}
	if b.QualityStep == 0 {
		b.QualityStep = DefaultQualityStep
	}
	if b.QualityFloor == 0 {
		b.QualityFloor = DefaultQualityFloor
	}
	return b
}

// Validate checks that the budget can be converged on.
func (b ScaleBudget) Validate() error {
	if b.MaxBytes <= 0 {
		return errors.NewInvalidRequestError("max bytes must be > 0, got %d", b.MaxBytes)
	}
	if b.MaxWidth < 0 || b.MaxHeight < 0 || b.MaxPixels < 0 {
		return errors.NewInvalidRequestError("pixel bounds must be >= 0, got %dx%d / %d", b.MaxWidth, b.MaxHeight, b.MaxPixels)
	}
	if b.QualityFloor < 1 || b.QualityFloor > 100 {
		return errors.NewInvalidRequestError("quality floor must be in [1, 100], got %d", b.QualityFloor)
	}
	if b.StartQuality < b.QualityFloor || b.StartQuality > 100 {
		return errors.NewInvalidRequestError("start quality must be in [%d, 100], got %d", b.QualityFloor, b.StartQuality)
	}
	if b.QualityStep <= 0 {
		return errors.NewInvalidRequestError("quality step must be > 0, got %d", b.QualityStep)
	}
	return nil
}

// Fit returns the dimensions an image of width × height must be resized to,
// and whether a resize is needed at all. Aspect ratio is kept and images are
// never enlarged.
func (b ScaleBudget) Fit(width, height int) (int, int, bool) {
	w, h := width, height

	if (b.MaxWidth > 0 && w > b.MaxWidth) || (b.MaxHeight > 0 && h > b.MaxHeight) {
		w, h = fitBox(w, h, b.MaxWidth, b.MaxHeight)
	}

	if b.MaxPixels > 0 && w*h > b.MaxPixels {
		ratio := math.Sqrt(float64(b.MaxPixels) / float64(w*h))
		w = max(1, int(math.Floor(float64(w)*ratio)))
		h = max(1, int(math.Floor(float64(h)*ratio)))
		for w*h > b.MaxPixels && w > 1 {
			w--
		}
	}

	return w, h, w != width || h != height
}

// fitBox scales w × h down so it fits inside maxW × maxH; a zero bound is unlimited.
func fitBox(w, h, maxW, maxH int) (int, int) {
	switch {
	case maxW == 0:
		return max(1, w*maxH/h), maxH
	case maxH == 0:
		return maxW, max(1, h*maxW/w)
	case w*maxH >= h*maxW:
		// width is the binding side
		return maxW, max(1, h*maxW/w)
	default:
		return max(1, w*maxH/h), maxH
	}
}
