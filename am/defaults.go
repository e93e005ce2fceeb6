package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	// Commons defaults
	v.SetDefault("commons.max_source_bytes", 5*1024*1024) // 5 MiB
	v.SetDefault("commons.media_types", []string{"image/jpeg", "image/png", "image/gif"})

	// Bluesky: facets index UTF-8 bytes, blobs are capped just under 1 MB
	v.SetDefault("destinations.bluesky.enabled", true)
	v.SetDefault("destinations.bluesky.length_policy", "bytes")
	v.SetDefault("destinations.bluesky.max_length", 300)
	v.SetDefault("destinations.bluesky.entry_max_length", 90)
	v.SetDefault("destinations.bluesky.description_max_length", 300)
	v.SetDefault("destinations.bluesky.alt_text_max_length", 0)
	v.SetDefault("destinations.bluesky.image.max_width", 1000)
	v.SetDefault("destinations.bluesky.image.max_height", 1000)
	v.SetDefault("destinations.bluesky.image.max_pixels", 0)
	v.SetDefault("destinations.bluesky.image.max_bytes", 976560)
	v.SetDefault("destinations.bluesky.image.start_quality", 90)
	v.SetDefault("destinations.bluesky.image.quality_step", 5)
	v.SetDefault("destinations.bluesky.image.quality_floor", 5)

	// Mastodon: every link counts 23 characters, media capped by pixel count
	v.SetDefault("destinations.mastodon.enabled", true)
	v.SetDefault("destinations.mastodon.length_policy", "link-shortened")
	v.SetDefault("destinations.mastodon.url_length", 23)
	v.SetDefault("destinations.mastodon.max_length", 500)
	v.SetDefault("destinations.mastodon.entry_max_length", 0)
	v.SetDefault("destinations.mastodon.description_max_length", 500)
	v.SetDefault("destinations.mastodon.alt_text_max_length", 1500)
	v.SetDefault("destinations.mastodon.image.max_width", 0)
	v.SetDefault("destinations.mastodon.image.max_height", 0)
	v.SetDefault("destinations.mastodon.image.max_pixels", 8388608)
	v.SetDefault("destinations.mastodon.image.max_bytes", 16*1024*1024) // 16 MiB
	v.SetDefault("destinations.mastodon.image.start_quality", 90)
	v.SetDefault("destinations.mastodon.image.quality_step", 5)
	v.SetDefault("destinations.mastodon.image.quality_floor", 5)
}

// BindEnvVars binds settings whose environment names do not follow the
// REPOST_ + key convention
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("log.json", "REPOST_LOG_JSON", "REPOST_JSON_LOGS")
	v.BindEnv("log.verbosity", "REPOST_LOG_VERBOSITY", "REPOST_VERBOSITY")
}
