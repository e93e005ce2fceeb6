package media

import (
	"image"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/logger"
)

// Scaler converges images onto a ScaleBudget.
// A Scaler holds no per-call state and is safe for concurrent use.
type Scaler struct {
	codec  Codec
	logger *zap.SugaredLogger
}

// Option configures a Scaler.
type Option func(*Scaler)

// WithCodec replaces the default JPEGCodec.
func WithCodec(c Codec) Option {
	return func(s *Scaler) {
		s.codec = c
	}
}

// NewScaler returns a Scaler logging to log (nop when nil).
func NewScaler(log *zap.SugaredLogger, opts ...Option) *Scaler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Scaler{
		codec:  JPEGCodec{},
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scale returns an asset that satisfies budget.
//
// The dimension phase runs at most once: an image outside the pixel bounds
// is resized to fit and encoded at StartQuality. The byte phase then walks
// a fixed quality ladder down by QualityStep, encoding the decoded image
// afresh at each rung, until the size fits. Dropping below QualityFloor
// fails with ErrImageTooLarge. An asset already within budget is returned
// unchanged, bytes and media type included.
func (s *Scaler) Scale(asset ImageAsset, budget ScaleBudget) (ImageAsset, error) {
	budget = budget.WithDefaults()
	if err := budget.Validate(); err != nil {
		return ImageAsset{}, err
	}
	if asset.Width <= 0 || asset.Height <= 0 {
		return ImageAsset{}, errors.NewInvalidRequestError("image dimensions unknown: %dx%d", asset.Width, asset.Height)
	}

	current := asset
	quality := budget.StartQuality
	passes := 0

	var img image.Image
	decode := func() error {
		if img != nil {
			return nil
		}
		decoded, err := s.codec.Decode(asset.Data)
		if err != nil {
			return err
		}
		img = decoded
		return nil
	}

	if width, height, resize := budget.Fit(asset.Width, asset.Height); resize {
		s.logger.Infow("Image exceeds pixel bounds, resizing",
			logger.FieldWidth, asset.Width,
			logger.FieldHeight, asset.Height,
			logger.FieldSize, humanize.Bytes(uint64(asset.Size())),
			"target", []int{width, height})

		if err := decode(); err != nil {
			return ImageAsset{}, err
		}
		img = s.codec.Resize(img, width, height)

		encoded, err := s.encode(img, quality)
		if err != nil {
			return ImageAsset{}, err
		}
		current = encoded
		passes++
		quality -= budget.QualityStep
	}

	for current.Size() > budget.MaxBytes {
		if quality < budget.QualityFloor {
			return ImageAsset{}, errors.WithHint(
				errors.Wrapf(errors.ErrImageTooLarge, "%d bytes over a budget of %d after %d passes",
					current.Size(), budget.MaxBytes, passes),
				"lower the quality floor or raise max_bytes")
		}

		s.logger.Debugw("Image exceeds byte budget",
			logger.FieldSize, current.Size(),
			logger.FieldMaxBytes, budget.MaxBytes,
			logger.FieldQuality, quality)

		if err := decode(); err != nil {
			return ImageAsset{}, err
		}
		encoded, err := s.encode(img, quality)
		if err != nil {
			return ImageAsset{}, err
		}
		current = encoded
		passes++
		quality -= budget.QualityStep
	}

	if passes == 0 {
		return asset, nil
	}

	s.logger.Infow("Scaled image",
		logger.FieldPasses, passes,
		logger.FieldWidth, current.Width,
		logger.FieldHeight, current.Height,
		logger.FieldSize, humanize.Bytes(uint64(current.Size())))

	return current, nil
}

func (s *Scaler) encode(img image.Image, quality int) (ImageAsset, error) {
	data, err := s.codec.Encode(img, quality)
	if err != nil {
		return ImageAsset{}, err
	}
	b := img.Bounds()
	return ImageAsset{
		Data:     data,
		Width:    b.Dx(),
		Height:   b.Dy(),
		MIMEType: s.codec.MIMEType(),
	}, nil
}
