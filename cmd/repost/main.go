package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/cmd/repost/commands"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/logger"
)

var rootCmd = &cobra.Command{
	Use:   "repost",
	Short: "Prepare Wikimedia Commons media for Bluesky and Mastodon",
	Long: `repost - Prepare Wikimedia Commons media for Bluesky and Mastodon.

Turns a Commons file into what each destination accepts: a citation block
within the destination's length rules, with link spans in its own units,
a cut description and alt text, and an image scaled into its budget.

Available commands:
  compose  - Compose the attribution text for one destination
  date     - Normalize Commons date strings
  scale    - Scale an image into a destination's budget
  prepare  - Prepare a Commons file for every enabled destination
  config   - Manage repost configuration
  version  - Show version information

Examples:
  repost prepare info.json --image Earth.jpg --out-dir out/
  repost compose --source https://commons.wikimedia.org/wiki/File:Example.jpg -d mastodon
  repost date "2014-04-21 11:54:46"
  repost config show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// A broken config must not keep 'config init' from replacing it
		cfg, cfgErr := am.Load()
		jsonLogs := false
		if cfgErr == nil {
			jsonLogs = cfg.Log.JSON
			if cfg.Log.Verbosity > verbosity {
				verbosity = cfg.Log.Verbosity
			}
		}

		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.SetVerbosity(verbosity)

		if cfgErr != nil {
			logger.Warnw("Failed to load configuration", logger.FieldError, cfgErr)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v info, -vv debug)")

	rootCmd.AddCommand(commands.ComposeCmd)
	rootCmd.AddCommand(commands.DateCmd)
	rootCmd.AddCommand(commands.ScaleCmd)
	rootCmd.AddCommand(commands.PrepareCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
