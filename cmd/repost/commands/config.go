package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage repost configuration",
	Long: `Display and manage repost configuration.

Configuration sources (later overrides earlier):
1. Built-in defaults
2. System config (/etc/repost/am.toml)
3. User config (~/.repost/am.toml)
4. Project config (./am.toml, searched up from the working directory)
5. Environment variables (REPOST_* prefix)

Examples:
  repost config show                          # Show merged configuration
  repost config show --format json            # Same, as JSON
  repost config get destinations.bluesky.max_length
  repost config where                         # Show where each value comes from
  repost config init                          # Write defaults to ~/.repost/am.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the merged repost configuration from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., destinations.mastodon.url_length)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long:  "List every effective setting grouped by the source it was loaded from.",
	RunE:  runConfigWhere,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Long: `Write the built-in defaults as an am.toml file.

The file goes to ~/.repost/am.toml unless --path is given. An existing file
is only replaced with --force, after a rotating backup (.back1 to .back3).`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var (
	configFormat   string
	configInitPath string
	configForce    bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "File to write (default: ~/.repost/am.toml)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	settings := am.GetViper().AllSettings()
	out := cmd.OutOrStdout()

	switch configFormat {
	case "json":
		return writeJSON(out, settings)

	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(out, "# repost configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Fprintf(out, "# repost configuration\n%s", data)

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !am.GetViper().IsSet(key) {
		return errors.WithHint(
			errors.Newf("configuration key %q not found", key),
			"run 'repost config where' to list every key")
	}

	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid (destinations: %v)\n", cfg.EnabledDestinations())
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Settings are sorted by key, so each group keeps key order
	type group struct {
		label    string
		settings []am.SettingInfo
	}
	var groups []*group
	byLabel := make(map[string]*group)

	for _, source := range []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	} {
		for _, setting := range intro.Settings {
			if setting.Source != source {
				continue
			}
			label := string(source)
			if setting.SourcePath != "" && source != am.SourceEnvironment {
				label = fmt.Sprintf("%s: %s", source, setting.SourcePath)
			}
			g, ok := byLabel[label]
			if !ok {
				g = &group{label: label}
				byLabel[label] = g
				groups = append(groups, g)
			}
			g.settings = append(g.settings, setting)
		}
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s] %d settings\n", g.label, len(g.settings))
		for _, s := range g.settings {
			value := fmt.Sprintf("%v", s.Value)
			if len(value) > 50 {
				value = value[:47] + "..."
			}
			if s.Source == am.SourceEnvironment {
				fmt.Fprintf(out, "  %s = %s (%s)\n", s.Key, value, s.SourcePath)
			} else {
				fmt.Fprintf(out, "  %s = %s\n", s.Key, value)
			}
		}
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitPath
	if path == "" {
		dir := am.UserConfigDir()
		if dir == "" {
			return errors.WithHint(
				errors.New("cannot determine the home directory"),
				"pass --path to choose the file")
		}
		path = filepath.Join(dir, am.ConfigFileName)
	}

	if err := am.WriteDefaultConfig(path, configForce); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
