// Package destination holds the per-platform publishing profiles and
// prepares one Commons file for every configured platform.
package destination

import (
	"github.com/spf13/viper"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/media"
	"github.com/teranos/commons-repost/textlen"
)

// Destination is the resolved profile of one publishing platform.
type Destination struct {
	Name        string
	Attribution attribution.Options

	// Character caps for the post text and the image alt text; 0 = uncapped
	DescriptionMaxLength int
	AltTextMaxLength     int

	Budget media.ScaleBudget
}

// FromConfig resolves a destination configuration into a profile.
func FromConfig(name string, c am.DestinationConfig) (Destination, error) {
	if err := c.Validate(); err != nil {
		return Destination{}, errors.Wrapf(err, "destination %s", name)
	}

	policy, err := textlen.ByName(c.LengthPolicy)
	if err != nil {
		return Destination{}, err
	}
	if ls, ok := policy.(textlen.LinkShortened); ok && c.URLLength > 0 {
		ls.URLLength = c.URLLength
		policy = ls
	}

	budget := media.ScaleBudget{
		MaxWidth:     c.Image.MaxWidth,
		MaxHeight:    c.Image.MaxHeight,
		MaxPixels:    c.Image.MaxPixels,
		MaxBytes:     c.Image.MaxBytes,
		StartQuality: c.Image.StartQuality,
		QualityStep:  c.Image.QualityStep,
		QualityFloor: c.Image.QualityFloor,
	}.WithDefaults()
	if err := budget.Validate(); err != nil {
		return Destination{}, errors.Wrapf(err, "destination %s image budget", name)
	}

	return Destination{
		Name: name,
		Attribution: attribution.Options{
			Policy:         policy,
			MaxLength:      c.MaxLength,
			EntryMaxLength: c.EntryMaxLength,
		},
		DescriptionMaxLength: c.DescriptionMaxLength,
		AltTextMaxLength:     c.AltTextMaxLength,
		Budget:               budget,
	}, nil
}

// FromConfigs resolves every enabled destination, sorted by name.
func FromConfigs(cfg *am.Config) ([]Destination, error) {
	names := cfg.EnabledDestinations()
	if len(names) == 0 {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("no destination enabled"),
			"set destinations.<name>.enabled = true in am.toml")
	}

	dests := make([]Destination, 0, len(names))
	for _, name := range names {
		d, err := FromConfig(name, cfg.Destinations[name])
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, nil
}

// Defaults returns the built-in Bluesky and Mastodon profiles.
func Defaults() ([]Destination, error) {
	v := viper.New()
	am.SetDefaults(v)

	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	return FromConfigs(cfg)
}

// Select returns the destinations named in names, in that order. An empty
// names list selects all of them.
func Select(dests []Destination, names ...string) ([]Destination, error) {
	if len(names) == 0 {
		return dests, nil
	}

	byName := make(map[string]Destination, len(dests))
	for _, d := range dests {
		byName[d.Name] = d
	}

	selected := make([]Destination, 0, len(names))
	for _, name := range names {
		d, ok := byName[name]
		if !ok {
			return nil, errors.NewInvalidRequestError("unknown or disabled destination %q", name)
		}
		selected = append(selected, d)
	}
	return selected, nil
}
