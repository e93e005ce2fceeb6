package bluesky

import (
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/lex/util"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/textlen"
)

// ImagePost builds the post carrying the image. The post text is the
// description cut to MaxPostLength characters; the alt text is the full
// description.
func ImagePost(description string, blob *util.LexBlob, now time.Time) (*appbsky.FeedPost, error) {
	if blob == nil {
		return nil, errors.NewInvalidRequestError("image post needs an uploaded blob")
	}

	return &appbsky.FeedPost{
		Text:      textlen.Truncate(textlen.Runes{}, description, MaxPostLength),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Embed: &appbsky.FeedPost_Embed{
			EmbedImages: &appbsky.EmbedImages{
				LexiconTypeID: "app.bsky.embed.images",
				Images: []*appbsky.EmbedImages_Image{
					{
						Alt:   description,
						Image: blob,
					},
				},
			},
		},
	}, nil
}

// AttributionPost builds the citation reply to the image post identified by
// parentURI and parentCID. The image post is both root and parent of the
// thread.
func AttributionPost(doc attribution.Document, parentURI, parentCID string, now time.Time) (*appbsky.FeedPost, error) {
	if parentURI == "" || parentCID == "" {
		return nil, errors.NewInvalidRequestError("attribution reply needs the parent uri and cid")
	}
	if err := doc.Validate(textlen.UTF8Bytes{}); err != nil {
		return nil, errors.Wrap(err, "attribution facets")
	}

	ref := &comatproto.RepoStrongRef{
		Uri: parentURI,
		Cid: parentCID,
	}

	return &appbsky.FeedPost{
		Text:      doc.Text,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Facets:    Facets(doc),
		Reply: &appbsky.FeedPost_ReplyRef{
			Root:   ref,
			Parent: ref,
		},
	}, nil
}

// CreateRecordInput wraps a post for com.atproto.repo.createRecord.
func CreateRecordInput(repo string, post *appbsky.FeedPost) *comatproto.RepoCreateRecord_Input {
	return &comatproto.RepoCreateRecord_Input{
		Collection: Collection,
		Repo:       repo,
		Record:     &util.LexiconTypeDecoder{Val: post},
	}
}
