package am

import (
	"fmt"
	"sort"
	"strings"
)

// Config represents the repost configuration
type Config struct {
	Log          LogConfig                    `mapstructure:"log"`
	Commons      CommonsConfig                `mapstructure:"commons"`
	Destinations map[string]DestinationConfig `mapstructure:"destinations"`
}

// LogConfig configures zap output
type LogConfig struct {
	JSON      bool `mapstructure:"json"`      // JSON lines instead of console output
	Verbosity int  `mapstructure:"verbosity"` // 0 = warn, 1 = info, 2+ = debug (same as -v count)
}

// CommonsConfig configures what is accepted from Wikimedia Commons
type CommonsConfig struct {
	MaxSourceBytes int      `mapstructure:"max_source_bytes"` // Files above this size are skipped
	MediaTypes     []string `mapstructure:"media_types"`      // Accepted source media types
}

// DestinationConfig configures one publishing destination
type DestinationConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Attribution text
	LengthPolicy   string `mapstructure:"length_policy"`    // bytes | link-shortened | runes
	URLLength      int    `mapstructure:"url_length"`       // Fixed link cost for link-shortened (default: 23)
	MaxLength      int    `mapstructure:"max_length"`       // Hard cap for the whole citation
	EntryMaxLength int    `mapstructure:"entry_max_length"` // Cap per citation line (0 = none)

	// Post description, counted in characters
	DescriptionMaxLength int `mapstructure:"description_max_length"` // 0 = uncapped
	AltTextMaxLength     int `mapstructure:"alt_text_max_length"`    // 0 = uncapped

	Image ImageConfig `mapstructure:"image"`
}

// ImageConfig is the scaling budget of a destination
type ImageConfig struct {
	MaxWidth     int `mapstructure:"max_width"`  // 0 = unbounded
	MaxHeight    int `mapstructure:"max_height"` // 0 = unbounded
	MaxPixels    int `mapstructure:"max_pixels"` // 0 = unbounded
	MaxBytes     int `mapstructure:"max_bytes"`
	StartQuality int `mapstructure:"start_quality"` // JPEG quality of the first encode (default: 90)
	QualityStep  int `mapstructure:"quality_step"`  // Quality decrement per pass (default: 5)
	QualityFloor int `mapstructure:"quality_floor"` // Lowest quality tried (default: 5)
}

// Destination names with built-in defaults
const (
	DestinationBluesky  = "bluesky"
	DestinationMastodon = "mastodon"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// EnabledDestinations returns the names of enabled destinations in sorted order
func (c *Config) EnabledDestinations() []string {
	names := make([]string, 0, len(c.Destinations))
	for name, d := range c.Destinations {
		if d.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Log: {JSON: %t, Verbosity: %d}, Destinations: [%s]}",
		c.Log.JSON, c.Log.Verbosity, strings.Join(c.EnabledDestinations(), ", "))
}
