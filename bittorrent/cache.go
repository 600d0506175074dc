package bittorrent

import (
	"context"
	"crypto/sha1"
	"time"

	"torrentmeta/bencode"
	"torrentmeta/util"
)

// TorrentCache memoizes extraction keyed by the content digest of the
// raw bytes. Decoding is a pure transform, so identical bytes always
// yield the same record and hits are safe to share across goroutines.
type TorrentCache struct {
	cache *util.TTLCache[string, *Torrent]
	opts  bencode.Options
}

func NewTorrentCache(ctx context.Context, ttl time.Duration, maxSize int, opts bencode.Options) *TorrentCache {
	return &TorrentCache{
		cache: util.NewTTLCache[string, *Torrent](ctx, ttl, maxSize),
		opts:  opts,
	}
}

func (c *TorrentCache) FromBytes(buf []byte) (*Torrent, error) {
	sum := sha1.Sum(buf)
	key := string(sum[:])
	if t, ok := c.cache.Get(key); ok {
		return t, nil
	}
	t, err := FromBytesWithOptions(buf, c.opts)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, t)
	return t, nil
}

func (c *TorrentCache) Close() {
	c.cache.Close()
}
