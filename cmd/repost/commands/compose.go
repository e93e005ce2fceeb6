package commands

import (
	"fmt"

	appbsky "github.com/bluesky-social/indigo/api/bsky"
	"github.com/spf13/cobra"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/bluesky"
	"github.com/teranos/commons-repost/plaintext"
	"github.com/teranos/commons-repost/wikidate"
)

// ComposeCmd renders the citation block for one destination
var ComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose the attribution text for one destination",
	Long: `Compose the attribution text for one destination.

Entries are laid out as "Label: value" lines in the order Author, Date,
Licence, Source. Empty values are skipped. The date is normalized from
Commons markup unless --raw-date is given.

Examples:
  repost compose --source https://commons.wikimedia.org/wiki/File:Example.jpg
  repost compose --author "NASA" --date "2014-04-21 11:54:46" \
      --licence "Public domain" --source https://commons.wikimedia.org/wiki/File:Example.jpg \
      --destination mastodon --format json`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

var (
	composeSource      attribution.Source
	composeDestination string
	composeFormat      string
	composeRawDate     bool
)

func init() {
	ComposeCmd.Flags().StringVar(&composeSource.Author, "author", "", "Author of the work (HTML is stripped)")
	ComposeCmd.Flags().StringVar(&composeSource.Date, "date", "", "Date of the work as it appears on Commons")
	ComposeCmd.Flags().StringVar(&composeSource.Licence, "licence", "", "Short licence name (HTML is stripped)")
	ComposeCmd.Flags().StringVar(&composeSource.LicenceURL, "licence-url", "", "Licence deed URL")
	ComposeCmd.Flags().StringVar(&composeSource.SourceURL, "source", "", "Commons file page URL (required)")
	ComposeCmd.Flags().StringVarP(&composeDestination, "destination", "d", am.DestinationBluesky, "Destination whose length rules apply")
	ComposeCmd.Flags().StringVar(&composeFormat, "format", "text", "Output format: text, json")
	ComposeCmd.Flags().BoolVar(&composeRawDate, "raw-date", false, "Use --date verbatim")

	_ = ComposeCmd.MarkFlagRequired("source")
}

// composeOutput is the JSON form of a composed citation
type composeOutput struct {
	Destination string                   `json:"destination"`
	Length      int                      `json:"length"`
	MaxLength   int                      `json:"max_length"`
	Document    attribution.Document     `json:"attribution"`
	Facets      []*appbsky.RichtextFacet `json:"facets,omitempty"`
}

func runCompose(cmd *cobra.Command, args []string) error {
	dest, err := loadDestination(composeDestination)
	if err != nil {
		return err
	}

	src := composeSource
	src.Author = plaintext.Extract(src.Author)
	src.Licence = plaintext.Extract(src.Licence)
	if !composeRawDate {
		src.Date = wikidate.Normalize(src.Date)
	}

	doc, err := attribution.Compose(src, dest.Attribution)
	if err != nil {
		return err
	}

	switch composeFormat {
	case "text":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
		return err

	case "json":
		out := composeOutput{
			Destination: dest.Name,
			Length:      dest.Attribution.Policy.Len(doc.Text),
			MaxLength:   dest.Attribution.MaxLength,
			Document:    doc,
		}
		if dest.Name == am.DestinationBluesky {
			out.Facets = bluesky.Facets(doc)
		}
		return writeJSON(cmd.OutOrStdout(), out)

	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", composeFormat)
	}
}
