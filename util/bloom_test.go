package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloomFilter(t *testing.T) {
	f := NewBloomFilter(1 << 16)

	assert.False(t, f.Exists([]byte("foo")))
	f.Add([]byte("foo"))
	assert.True(t, f.Exists([]byte("foo")))
	assert.False(t, f.Exists([]byte("bar")))
	assert.Equal(t, uint64(1), f.Count())
}

func TestBloomFilter_SaveLoad(t *testing.T) {
	f := NewBloomFilter(1 << 16)
	f.Add([]byte("foo"))
	f.Add([]byte("baz"))

	buf := &bytes.Buffer{}
	assert.NoError(t, f.Save(buf))

	loaded, err := LoadBloomFilter(buf)
	if assert.NoError(t, err) {
		assert.True(t, loaded.Exists([]byte("foo")))
		assert.True(t, loaded.Exists([]byte("baz")))
		assert.False(t, loaded.Exists([]byte("bar")))
		assert.Equal(t, uint64(2), loaded.Count())
	}
}
