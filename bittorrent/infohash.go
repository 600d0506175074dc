package bittorrent

import (
	"crypto/sha1"
	"encoding/hex"

	"torrentmeta/bencode"

	"github.com/pkg/errors"
)

// InfoHashSize is the digest length mandated by the protocol.
const InfoHashSize = sha1.Size

// InfoHash is the SHA-1 digest of the canonically encoded info
// dictionary; it names the torrent across trackers and peers.
type InfoHash [InfoHashSize]byte

// Hex renders the hash as 40 lowercase hex characters.
func (h InfoHash) Hex() string {
	return hex.EncodeToString(h[:])
}

var ErrMissingInfoDict = errors.New("torrent: no info dictionary")

// CalculateInfoHash digests the canonical encoding of root's "info"
// entry. When the decoder already verified the original info span
// canonical, the digest runs directly over that span; otherwise the
// sub-tree is re-encoded first, so the hash never depends on how the
// source bytes happened to be formatted.
func CalculateInfoHash(root *bencode.Dictionary) (InfoHash, error) {
	v, ok := root.Get("info")
	if !ok {
		return InfoHash{}, ErrMissingInfoDict
	}
	info, ok := v.(*bencode.Dictionary)
	if !ok {
		return InfoHash{}, ErrMissingInfoDict
	}
	if raw, ok := info.CanonicalBytes(); ok {
		return sha1.Sum(raw), nil
	}
	return sha1.Sum(bencode.Encode(info)), nil
}
