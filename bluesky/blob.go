package bluesky

import (
	"github.com/bluesky-social/indigo/lex/util"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/media"
)

// blobPrefix is the CID form a PDS assigns to uploaded blobs: CIDv1, raw
// codec, sha2-256.
var blobPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   multihash.SHA2_256,
	MhLength: -1,
}

// BlobRef returns the blob reference com.atproto.repo.uploadBlob will
// report for asset, so records can be drafted before the upload.
func BlobRef(asset media.ImageAsset) (*util.LexBlob, error) {
	if len(asset.Data) == 0 {
		return nil, errors.NewInvalidRequestError("blob ref needs image data")
	}

	c, err := blobCID(asset.Data)
	if err != nil {
		return nil, err
	}

	return &util.LexBlob{
		Ref:      util.LexLink(c),
		MimeType: asset.MIMEType,
		Size:     int64(len(asset.Data)),
	}, nil
}

func blobCID(data []byte) (cid.Cid, error) {
	c, err := blobPrefix.Sum(data)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "failed to hash blob")
	}
	return c, nil
}
