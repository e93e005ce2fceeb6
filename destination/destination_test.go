package destination

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commons-repost/am"
	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/media"
	"github.com/teranos/commons-repost/textlen"
)

const (
	nemanjaURL = "https://commons.wikimedia.org/wiki/File:%D0%A1%D1%82%D0%B5%D1%84%D0%B0%D0%BD_%D0%9D%D0%B5%D0%BC%D0%B0%D1%9A%D0%B0_%D0%BF%D1%80%D0%B5%D0%B4%D0%B0%D1%98%D0%B5_%D1%81%D0%B0_%D0%B1%D0%BB%D0%B0%D0%B3%D0%BE%D1%81%D0%BB%D0%BE%D0%B2%D0%BE%D0%BC_%D0%B2%D0%BB%D0%B0%D0%B4%D1%83_%D1%81%D1%80%D0%B1%D1%81%D0%BA%D1%83_%D1%81%D0%B8%D0%BD%D1%83_%D1%81%D0%B2%D0%BE%D0%BC_%D0%A1%D1%82%D0%B5%D1%84%D0%B0%D0%BD%D1%83_%D0%9F%D1%80%D0%B2%D0%BE%D0%B2%D0%B5%D0%BD%D1%87%D0%B0%D0%BD%D0%BE%D0%BC.jpg"
	ccBySA40   = "https://creativecommons.org/licenses/by-sa/4.0/"
	exampleURL = "https://commons.wikimedia.org/wiki/File:Example.jpg"
)

// longURL fits Bluesky's cap on its own but not after the other entries
var longURL = "https://commons.wikimedia.org/wiki/File:" + strings.Repeat("%D0%A1", 35) + ".jpg"

func defaults(t *testing.T) []Destination {
	t.Helper()
	dests, err := Defaults()
	require.NoError(t, err)
	return dests
}

func TestDefaults(t *testing.T) {
	dests := defaults(t)
	require.Len(t, dests, 2)

	bsky, masto := dests[0], dests[1]

	assert.Equal(t, am.DestinationBluesky, bsky.Name)
	assert.Equal(t, textlen.UTF8Bytes{}, bsky.Attribution.Policy)
	assert.Equal(t, 300, bsky.Attribution.MaxLength)
	assert.Equal(t, 90, bsky.Attribution.EntryMaxLength)
	assert.Equal(t, media.BlueskyBudget, bsky.Budget)

	assert.Equal(t, am.DestinationMastodon, masto.Name)
	assert.Equal(t, textlen.LinkShortened{URLLength: 23}, masto.Attribution.Policy)
	assert.Equal(t, 500, masto.Attribution.MaxLength)
	assert.Equal(t, media.MastodonBudget, masto.Budget)
	assert.Equal(t, 1500, masto.AltTextMaxLength)
}

func TestFromConfigURLLength(t *testing.T) {
	d, err := FromConfig("mastodon", am.DestinationConfig{
		LengthPolicy: "link-shortened",
		URLLength:    30,
		MaxLength:    500,
		Image:        am.ImageConfig{MaxBytes: 1 << 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 30, d.Attribution.Policy.Len("https://example.org"))
	assert.Equal(t, media.DefaultStartQuality, d.Budget.StartQuality)
}

func TestFromConfigsNothingEnabled(t *testing.T) {
	_, err := FromConfigs(&am.Config{Destinations: map[string]am.DestinationConfig{
		"bluesky": {Enabled: false},
	}})
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestSelect(t *testing.T) {
	dests := defaults(t)

	selected, err := Select(dests, "mastodon")
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "mastodon", selected[0].Name)

	all, err := Select(dests)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = Select(dests, "threads")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func pngAsset(t *testing.T, width, height int) media.ImageAsset {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, width, height))))
	asset, err := media.NewImageAsset(buf.Bytes())
	require.NoError(t, err)
	return asset
}

func TestPrepare(t *testing.T) {
	req := Request{
		Source: attribution.Source{
			Author:     "Anonymous",
			Date:       "c. 1220",
			Licence:    "CC BY-SA 4.0",
			LicenceURL: ccBySA40,
			SourceURL:  longURL,
		},
		Description: strings.Repeat("Стефан Немања ", 50),
		Image:       pngAsset(t, 2000, 500),
	}

	results, err := NewPreparer(nil, nil).Prepare(context.Background(), req, defaults(t))
	require.NoError(t, err)
	require.Len(t, results, 2)

	bsky := results[0]
	assert.Equal(t, am.DestinationBluesky, bsky.Destination)
	// Bluesky counts the URL in bytes, so the final cut shortens the source line
	assert.Len(t, bsky.Attribution.Text, 300)
	assert.False(t, strings.HasSuffix(bsky.Attribution.Text, longURL))
	assert.NoError(t, bsky.Attribution.Validate(textlen.UTF8Bytes{}))
	assert.Equal(t, 300, len([]rune(bsky.Description)))
	assert.Equal(t, req.Description, bsky.AltText)
	assert.Equal(t, 1000, bsky.Image.Width)
	assert.Equal(t, 250, bsky.Image.Height)
	assert.Equal(t, "image/jpeg", bsky.Image.MIMEType)

	masto := results[1]
	assert.Equal(t, am.DestinationMastodon, masto.Destination)
	// The long source URL counts 23 on Mastodon and survives whole
	assert.True(t, strings.HasSuffix(masto.Attribution.Text, "Source: "+longURL))
	require.NotEmpty(t, masto.Attribution.Links)
	assert.Equal(t, longURL, masto.Attribution.Links[len(masto.Attribution.Links)-1].URI)
	assert.Equal(t, 500, len([]rune(masto.Description)))
	// Within the pixel budget: passed through untouched
	assert.Equal(t, req.Image, masto.Image)
}

func TestPrepareWithoutImage(t *testing.T) {
	req := Request{
		Source:      attribution.Source{SourceURL: exampleURL},
		Description: "Example.jpg",
	}

	results, err := NewPreparer(nil, nil).Prepare(context.Background(), req, defaults(t))
	require.NoError(t, err)
	for _, r := range results {
		assert.Empty(t, r.Image.Data)
		assert.Equal(t, "Example.jpg", r.Description)
	}
}

func TestPrepareReportsDestination(t *testing.T) {
	dests := defaults(t)
	// Too small for the source line
	dests[1].Attribution.MaxLength = 20

	_, err := NewPreparer(nil, nil).Prepare(context.Background(), Request{
		Source: attribution.Source{SourceURL: exampleURL},
	}, dests)

	require.Error(t, err)
	assert.True(t, errors.IsAttributionTooLong(err))
	assert.Contains(t, err.Error(), "destination mastodon")
}

func TestPrepareSourceTooLongForBluesky(t *testing.T) {
	dests, err := Select(defaults(t), am.DestinationBluesky)
	require.NoError(t, err)

	_, err = NewPreparer(nil, nil).Prepare(context.Background(), Request{
		Source: attribution.Source{SourceURL: nemanjaURL},
	}, dests)
	assert.True(t, errors.IsAttributionTooLong(err))

	dests, err = Select(defaults(t), am.DestinationMastodon)
	require.NoError(t, err)

	results, err := NewPreparer(nil, nil).Prepare(context.Background(), Request{
		Source: attribution.Source{SourceURL: nemanjaURL},
	}, dests)
	require.NoError(t, err)
	assert.Equal(t, "Source: "+nemanjaURL, results[0].Attribution.Text)
}

func TestPrepareCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPreparer(nil, nil).Prepare(ctx, Request{
		Source: attribution.Source{SourceURL: nemanjaURL},
	}, defaults(t))
	assert.ErrorIs(t, err, context.Canceled)
}
