package util

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[string, int](context.Background(), 50*time.Millisecond, 100)
	defer c.Close()

	c.Set("foo", 1)
	v, ok := c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("foo")
	assert.False(t, ok)

	c.Set("foo", 2)
	v, ok = c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTTLCache_Overwrite(t *testing.T) {
	c := NewTTLCache[string, int](context.Background(), time.Minute, 100)
	defer c.Close()

	c.Set("foo", 1)
	c.Set("foo", 2)
	v, ok := c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestTTLCache_Eviction(t *testing.T) {
	c := NewTTLCache[string, int](context.Background(), time.Minute, 3)
	defer c.Close()

	for i := 0; i < 4; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("0")
	assert.False(t, ok)
	v, ok := c.Get("3")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestTTLCache_Delete(t *testing.T) {
	c := NewTTLCache[string, int](context.Background(), time.Minute, 100)
	defer c.Close()

	c.Set("foo", 1)
	c.Delete("foo")
	_, ok := c.Get("foo")
	assert.False(t, ok)
	// Deleting twice is fine.
	c.Delete("foo")
}
