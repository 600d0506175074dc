package bittorrent

import (
	"context"
	"testing"
	"time"

	"torrentmeta/bencode"

	"github.com/stretchr/testify/assert"
)

func TestTorrentCache(t *testing.T) {
	cache := NewTorrentCache(context.Background(), time.Minute, 16, bencode.Options{})
	defer cache.Close()

	data := singleFileTorrent()
	first, err := cache.FromBytes(data)
	assert.NoError(t, err)

	// Identical bytes hit the cache and share the record.
	second, err := cache.FromBytes(data)
	assert.NoError(t, err)
	assert.Same(t, first, second)

	// A fresh copy of the same content is still a hit.
	copied := append([]byte(nil), data...)
	third, err := cache.FromBytes(copied)
	assert.NoError(t, err)
	assert.Same(t, first, third)
}

func TestTorrentCache_ErrorsNotCached(t *testing.T) {
	cache := NewTorrentCache(context.Background(), time.Minute, 16, bencode.Options{})
	defer cache.Close()

	_, err := cache.FromBytes([]byte("not bencode"))
	assert.Error(t, err)
	_, err = cache.FromBytes([]byte("not bencode"))
	assert.Error(t, err)
}
