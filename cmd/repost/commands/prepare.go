package commands

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/bluesky"
	"github.com/teranos/commons-repost/commons"
	"github.com/teranos/commons-repost/destination"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/logger"
	"github.com/teranos/commons-repost/media"
)

// PrepareCmd shapes one Commons file for every destination
var PrepareCmd = &cobra.Command{
	Use:   "prepare <imageinfo.json>",
	Short: "Prepare a Commons file for every enabled destination",
	Long: `Prepare a Commons file for every enabled destination.

Reads a Commons image-info response (action=query&prop=imageinfo with
iiprop=extmetadata|size|url|mime), composes the attribution and post text
for each destination and, given --image, scales the downloaded file into
each destination's budget. The result is printed as JSON.

With --repo, Bluesky results also carry draft createRecord inputs: the
image post, and the attribution reply once --reply-uri and --reply-cid name
the published image post.

Examples:
  repost prepare info.json
  repost prepare info.json --image Earth.jpg --out-dir out/
  repost prepare info.json -d bluesky --image Earth.jpg --repo did:plc:abc \
      --reply-uri at://did:plc:abc/app.bsky.feed.post/3k44 --reply-cid bafyrei...`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

var (
	prepareDestinations []string
	prepareImage        string
	prepareOutDir       string
	prepareRepo         string
	prepareReplyURI     string
	prepareReplyCID     string
)

func init() {
	PrepareCmd.Flags().StringSliceVarP(&prepareDestinations, "destination", "d", nil, "Destinations to prepare (default: all enabled)")
	PrepareCmd.Flags().StringVar(&prepareImage, "image", "", "Downloaded Commons file to scale")
	PrepareCmd.Flags().StringVar(&prepareOutDir, "out-dir", "", "Directory to write scaled images to")
	PrepareCmd.Flags().StringVar(&prepareRepo, "repo", "", "Bluesky repo (DID or handle) for draft records")
	PrepareCmd.Flags().StringVar(&prepareReplyURI, "reply-uri", "", "AT URI of the published image post")
	PrepareCmd.Flags().StringVar(&prepareReplyCID, "reply-cid", "", "CID of the published image post")
}

// prepareOutput is the JSON document printed by prepare
type prepareOutput struct {
	Title        string              `json:"title"`
	Source       attribution.Source  `json:"source"`
	Description  string              `json:"description"`
	Destinations []destinationOutput `json:"destinations"`
}

type destinationOutput struct {
	destination.Result
	Facets  []*appbsky.RichtextFacet             `json:"facets,omitempty"`
	Image   *imageOutput                         `json:"image,omitempty"`
	Records []*comatproto.RepoCreateRecord_Input `json:"records,omitempty"`
}

type imageOutput struct {
	Path     string `json:"path,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
	CID      string `json:"cid,omitempty"`
}

func runPrepare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	limits, err := commonsLimits()
	if err != nil {
		return err
	}
	dests, err := loadDestinations(prepareDestinations)
	if err != nil {
		return err
	}

	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	info, err := commons.ParseImageInfo(data)
	if err != nil {
		return err
	}
	if err := info.ValidateLimits(limits); err != nil {
		return errors.Wrapf(err, "%s", info.Title)
	}

	src, err := info.Attribution()
	if err != nil {
		return errors.Wrapf(err, "%s", info.Title)
	}

	req := destination.Request{
		Source:      src,
		Description: info.Description(),
	}
	if prepareImage != "" {
		if req.Image, err = readImage(prepareImage, limits); err != nil {
			return err
		}
	}

	ctx = logger.WithRequestID(ctx, info.Title)
	results, err := destination.NewPreparer(logger.ComponentLogger("prepare"), nil).Prepare(ctx, req, dests)
	if err != nil {
		return errors.Wrapf(err, "%s", info.Title)
	}

	out := prepareOutput{
		Title:       info.Title,
		Source:      src,
		Description: req.Description,
	}
	now := time.Now()
	for _, res := range results {
		d, err := describeResult(res, info.FileName, now)
		if err != nil {
			return errors.Wrapf(err, "destination %s", res.Destination)
		}
		out.Destinations = append(out.Destinations, d)
	}

	logger.Infow("Prepared Commons file",
		logger.FieldSource, src.SourceURL,
		"destinations", len(out.Destinations))

	return writeJSON(cmd.OutOrStdout(), out)
}

func readImage(file string, limits commons.Limits) (media.ImageAsset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return media.ImageAsset{}, errors.Wrapf(err, "failed to read %s", file)
	}
	asset, err := media.NewImageAsset(data)
	if err != nil {
		return media.ImageAsset{}, errors.Wrapf(err, "failed to read image %s", file)
	}
	if err := limits.CheckMediaType(asset.MIMEType); err != nil {
		return media.ImageAsset{}, err
	}
	return asset, nil
}

func describeResult(res destination.Result, fileName string, now time.Time) (destinationOutput, error) {
	out := destinationOutput{Result: res}

	isBluesky := res.Destination == am.DestinationBluesky
	if isBluesky {
		out.Facets = bluesky.Facets(res.Attribution)
	}

	if len(res.Image.Data) > 0 {
		img := &imageOutput{
			Width:    res.Image.Width,
			Height:   res.Image.Height,
			MIMEType: res.Image.MIMEType,
			Size:     res.Image.Size(),
		}
		if prepareOutDir != "" {
			p, err := writeScaled(res, fileName)
			if err != nil {
				return destinationOutput{}, err
			}
			img.Path = p
		}

		if isBluesky {
			blob, err := bluesky.BlobRef(res.Image)
			if err != nil {
				return destinationOutput{}, err
			}
			img.CID = cid.Cid(blob.Ref).String()

			if prepareRepo != "" {
				post, err := bluesky.ImagePost(res.AltText, blob, now)
				if err != nil {
					return destinationOutput{}, err
				}
				out.Records = append(out.Records, bluesky.CreateRecordInput(prepareRepo, post))
			}
		}
		out.Image = img
	}

	if isBluesky && prepareRepo != "" && (prepareReplyURI != "" || prepareReplyCID != "") {
		post, err := bluesky.AttributionPost(res.Attribution, prepareReplyURI, prepareReplyCID, now)
		if err != nil {
			return destinationOutput{}, err
		}
		out.Records = append(out.Records, bluesky.CreateRecordInput(prepareRepo, post))
	}

	return out, nil
}

// writeScaled stores a scaled image as <name>-<destination><ext> in prepareOutDir
func writeScaled(res destination.Result, fileName string) (string, error) {
	if err := os.MkdirAll(prepareOutDir, am.DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", prepareOutDir)
	}

	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	base = strings.ReplaceAll(base, "/", "_")
	if base == "" {
		base = "image"
	}

	ext := path.Ext(fileName)
	if m := mimetype.Lookup(res.Image.MIMEType); m != nil {
		ext = m.Extension()
	}

	p := filepath.Join(prepareOutDir, fmt.Sprintf("%s-%s%s", base, res.Destination, ext))
	if err := os.WriteFile(p, res.Image.Data, am.DefaultFilePermissions); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", p)
	}
	return p, nil
}
