package bluesky

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bluesky-social/indigo/lex/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
)

const (
	mastilesURL = "https://commons.wikimedia.org/wiki/File:Mastiles_Gate_and_Lane_-_geograph.org.uk_-_2567679.jpg"
	ccBySA20    = "https://creativecommons.org/licenses/by-sa/2.0/"
	parentURI   = "at://did:plc:ewvi7nxzyoun6zhxrhs64oiz/app.bsky.feed.post/3k44deefqdk2g"
	parentCID   = "bafyreiaqzozcrbpsyaiuvwfp5lwzdzlfahaqwt7pxzgcwayj3oxxdtvvvu"
)

var now = time.Date(2024, 3, 9, 14, 30, 0, 0, time.FixedZone("CET", 3600))

func mastilesDocument(t *testing.T) attribution.Document {
	t.Helper()
	doc, err := attribution.Compose(attribution.Source{
		Author:     "Tom Richardson",
		Date:       "2011-08-22",
		Licence:    "CC BY-SA 2.0",
		LicenceURL: ccBySA20,
		SourceURL:  mastilesURL,
	}, ComposeOptions())
	require.NoError(t, err)
	return doc
}

func TestFacets(t *testing.T) {
	facets := Facets(mastilesDocument(t))
	require.Len(t, facets, 2)

	assert.Equal(t, int64(49), facets[0].Index.ByteStart)
	assert.Equal(t, int64(61), facets[0].Index.ByteEnd)
	require.Len(t, facets[0].Features, 1)
	assert.Equal(t, ccBySA20, facets[0].Features[0].RichtextFacet_Link.Uri)

	assert.Equal(t, int64(70), facets[1].Index.ByteStart)
	assert.Equal(t, int64(164), facets[1].Index.ByteEnd)
	assert.Equal(t, mastilesURL, facets[1].Features[0].RichtextFacet_Link.Uri)
}

func TestFacetsMultibyteOffsets(t *testing.T) {
	doc, err := attribution.Compose(attribution.Source{
		Author:     "Jovanović",
		Licence:    "CC-BÜ-Sя",
		LicenceURL: "https://creativecommons.org/licenses/by-sa/4.0/",
		SourceURL:  "https://commons.wikimedia.org/wiki/File:Stralau.jpg",
	}, ComposeOptions())
	require.NoError(t, err)

	facets := Facets(doc)
	require.Len(t, facets, 2)

	licence := facets[0].Index
	assert.Equal(t, "CC-BÜ-Sя", doc.Text[licence.ByteStart:licence.ByteEnd])
	assert.Equal(t, int64(10), licence.ByteEnd-licence.ByteStart)
}

func TestFacetsWithoutLinks(t *testing.T) {
	assert.Nil(t, Facets(attribution.Document{Text: "Author: Anonymous"}))
}

func TestAttributionPost(t *testing.T) {
	doc := mastilesDocument(t)

	post, err := AttributionPost(doc, parentURI, parentCID, now)
	require.NoError(t, err)

	assert.Equal(t, doc.Text, post.Text)
	assert.Equal(t, "2024-03-09T13:30:00Z", post.CreatedAt)
	require.NotNil(t, post.Reply)
	assert.Equal(t, parentURI, post.Reply.Root.Uri)
	assert.Equal(t, parentCID, post.Reply.Parent.Cid)
	assert.Len(t, post.Facets, 2)
	assert.LessOrEqual(t, len(post.Text), MaxPostLength)

	data, err := json.Marshal(post)
	require.NoError(t, err)
	assert.Equal(t, int64(70), gjson.GetBytes(data, "facets.1.index.byteStart").Int())
	assert.Equal(t, LinkFeatureType, gjson.GetBytes(data, "facets.0.features.0.$type").String())
}

func TestAttributionPostRequiresParent(t *testing.T) {
	_, err := AttributionPost(mastilesDocument(t), "", parentCID, now)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestAttributionPostRejectsStraySpans(t *testing.T) {
	doc := attribution.Document{
		Text:  "Source: x",
		Links: []attribution.Link{{Start: 8, End: 40, URI: mastilesURL}},
	}
	_, err := AttributionPost(doc, parentURI, parentCID, now)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestImagePost(t *testing.T) {
	description := strings.Repeat("Pénitents blancs ", 30)
	blob := &util.LexBlob{MimeType: "image/jpeg", Size: 512_000}

	post, err := ImagePost(description, blob, now)
	require.NoError(t, err)

	assert.Equal(t, MaxPostLength, len([]rune(post.Text)))
	assert.True(t, strings.HasPrefix(description, post.Text))
	require.NotNil(t, post.Embed)
	require.NotNil(t, post.Embed.EmbedImages)
	require.Len(t, post.Embed.EmbedImages.Images, 1)
	assert.Equal(t, description, post.Embed.EmbedImages.Images[0].Alt)
	assert.Same(t, blob, post.Embed.EmbedImages.Images[0].Image)
}

func TestImagePostRequiresBlob(t *testing.T) {
	_, err := ImagePost("View of Earth", nil, now)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestCreateRecordInput(t *testing.T) {
	post, err := ImagePost("View of Earth", &util.LexBlob{MimeType: "image/jpeg"}, now)
	require.NoError(t, err)

	in := CreateRecordInput("did:plc:ewvi7nxzyoun6zhxrhs64oiz", post)
	assert.Equal(t, Collection, in.Collection)
	assert.Same(t, post, in.Record.Val)
}
