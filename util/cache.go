package util

import (
	"context"
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	timer *time.Timer
	value V
}

// TTLCache is a size- and TTL-bounded cache. Entries expire on a timer;
// when the cache is full the oldest write is evicted. Eviction order is
// approximate FIFO: deletes pop the front token regardless of key.
type TTLCache[K comparable, V any] struct {
	ttl     time.Duration
	maxSize int
	tokens  chan K
	data    map[K]ttlEntry[V]
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewTTLCache[K comparable, V any](ctx context.Context, ttl time.Duration, maxSize int) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		ttl:     ttl,
		maxSize: maxSize,
		tokens:  make(chan K, maxSize),
		data:    make(map[K]ttlEntry[V], maxSize),
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	return c
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.Delete(key)
	for len(c.tokens) >= c.maxSize {
		// The popped token already accounts for the evicted entry.
		old := <-c.tokens
		c.mu.Lock()
		c.remove(old)
		c.mu.Unlock()
	}
	c.tokens <- key
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = ttlEntry[V]{
		timer: time.AfterFunc(c.ttl, func() {
			c.Delete(key)
		}),
		value: value,
	}
}

func (c *TTLCache[K, V]) Get(key K) (value V, exists bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, exists := c.data[key]
	if exists {
		value = entry.value
	}
	return
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remove(key) {
		select {
		case <-c.tokens:
		default:
		}
	}
}

// remove drops the entry without touching the token queue; the caller
// holds the lock and settles token accounting.
func (c *TTLCache[K, V]) remove(key K) bool {
	entry, ok := c.data[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(c.data, key)
	return true
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Close stops all pending expiry timers.
func (c *TTLCache[K, V]) Close() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		c.remove(key)
	}
}
