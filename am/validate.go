package am

import (
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/textlen"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// 0 = no ceiling on source files, negative is invalid
	if c.Commons.MaxSourceBytes < 0 {
		return errors.Newf("commons.max_source_bytes must be >= 0, got %d", c.Commons.MaxSourceBytes)
	}

	for name, d := range c.Destinations {
		// Disabled destinations may be half configured
		if !d.Enabled {
			continue
		}
		if err := d.Validate(); err != nil {
			return errors.Wrapf(err, "destinations.%s", name)
		}
	}

	return nil
}

// Validate checks one destination
func (d DestinationConfig) Validate() error {
	if _, err := textlen.ByName(d.LengthPolicy); err != nil {
		return errors.Wrap(err, "length_policy")
	}
	if d.URLLength < 0 {
		return errors.Newf("url_length must be >= 0, got %d", d.URLLength)
	}
	if d.MaxLength <= 0 {
		return errors.Newf("max_length must be > 0, got %d", d.MaxLength)
	}
	if d.EntryMaxLength < 0 {
		return errors.Newf("entry_max_length must be >= 0, got %d", d.EntryMaxLength)
	}
	if d.EntryMaxLength > d.MaxLength {
		return errors.Newf("entry_max_length (%d) cannot exceed max_length (%d)", d.EntryMaxLength, d.MaxLength)
	}
	if d.DescriptionMaxLength < 0 {
		return errors.Newf("description_max_length must be >= 0, got %d", d.DescriptionMaxLength)
	}
	if d.AltTextMaxLength < 0 {
		return errors.Newf("alt_text_max_length must be >= 0, got %d", d.AltTextMaxLength)
	}

	img := d.Image
	if img.MaxBytes <= 0 {
		return errors.Newf("image.max_bytes must be > 0, got %d", img.MaxBytes)
	}
	if img.MaxWidth < 0 || img.MaxHeight < 0 || img.MaxPixels < 0 {
		return errors.Newf("image bounds must be >= 0, got %dx%d / %d pixels", img.MaxWidth, img.MaxHeight, img.MaxPixels)
	}
	// Quality settings: 0 = default, otherwise a JPEG quality
	for _, q := range []struct {
		key   string
		value int
	}{
		{"image.start_quality", img.StartQuality},
		{"image.quality_floor", img.QualityFloor},
	} {
		if q.value < 0 || q.value > 100 {
			return errors.Newf("%s must be in [0, 100], got %d", q.key, q.value)
		}
	}
	if img.QualityStep < 0 {
		return errors.Newf("image.quality_step must be >= 0, got %d", img.QualityStep)
	}

	return nil
}
