package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/logger"
	"github.com/teranos/commons-repost/media"
)

// ScaleCmd fits an image file into a destination's budget
var ScaleCmd = &cobra.Command{
	Use:   "scale <input> <output>",
	Short: "Scale an image into a destination's size budget",
	Long: `Scale an image into a destination's size budget.

Images outside the dimension bounds are resized once, then re-encoded as
JPEG at falling quality until the byte budget is met. An image already
within budget is copied unchanged. Use "-" as input to read standard input.

Examples:
  repost scale Earth.png earth-bsky.jpg
  repost scale Earth.png earth-masto.jpg --destination mastodon`,
	Args: cobra.ExactArgs(2),
	RunE: runScale,
}

var scaleDestination string

func init() {
	ScaleCmd.Flags().StringVarP(&scaleDestination, "destination", "d", am.DestinationBluesky, "Destination whose image budget applies")
}

func runScale(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	dest, err := loadDestination(scaleDestination)
	if err != nil {
		return err
	}

	data, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	asset, err := media.NewImageAsset(data)
	if err != nil {
		return errors.Wrapf(err, "failed to read image %s", input)
	}

	scaled, err := media.NewScaler(logger.ComponentLogger("media")).Scale(asset, dest.Budget)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, scaled.Data, am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %s %s → %dx%d %s %s\n",
		dest.Name,
		asset.Width, asset.Height, asset.MIMEType, humanize.Bytes(uint64(asset.Size())),
		scaled.Width, scaled.Height, scaled.MIMEType, humanize.Bytes(uint64(scaled.Size())))
	return nil
}
