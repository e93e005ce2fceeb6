// Package bluesky shapes citations and images into app.bsky.feed.post
// records. Nothing here talks to a PDS; callers upload blobs and create
// records with their own xrpc client.
package bluesky

import (
	appbsky "github.com/bluesky-social/indigo/api/bsky"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/textlen"
)

// Collection is the NSID posts are created in
const Collection = "app.bsky.feed.post"

// LinkFeatureType is the $type of a link facet feature
const LinkFeatureType = "app.bsky.richtext.facet#link"

// MaxPostLength is the post text budget. Attribution documents are composed
// against it in UTF-8 bytes, the unit facet indices are expressed in.
const MaxPostLength = 300

// Facets converts the document's link spans into richtext link facets.
// The document must have been composed with textlen.UTF8Bytes.
func Facets(doc attribution.Document) []*appbsky.RichtextFacet {
	if len(doc.Links) == 0 {
		return nil
	}

	facets := make([]*appbsky.RichtextFacet, 0, len(doc.Links))
	for _, l := range doc.Links {
		facets = append(facets, &appbsky.RichtextFacet{
			Index: &appbsky.RichtextFacet_ByteSlice{
				ByteStart: int64(l.Start),
				ByteEnd:   int64(l.End),
			},
			Features: []*appbsky.RichtextFacet_Features_Elem{
				{
					RichtextFacet_Link: &appbsky.RichtextFacet_Link{
						LexiconTypeID: LinkFeatureType,
						Uri:           l.URI,
					},
				},
			},
		})
	}
	return facets
}

// ComposeOptions are the attribution options for a Bluesky citation post.
func ComposeOptions() attribution.Options {
	return attribution.Options{
		Policy:         textlen.UTF8Bytes{},
		MaxLength:      MaxPostLength,
		EntryMaxLength: 90,
	}
}
