package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TTL is a bounded read-through cache for view models. Entries expire after
// the configured TTL and must be invalidated explicitly on every successful
// write to the backing data, so callers never observe stale balances longer
// than one TTL even if an invalidation is missed.
type TTL[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

func NewTTL[K comparable, V any](size int, ttl time.Duration) *TTL[K, V] {
	return &TTL[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

func (c *TTL[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *TTL[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

func (c *TTL[K, V]) Invalidate(key K) {
	c.lru.Remove(key)
}

func (c *TTL[K, V]) Purge() {
	c.lru.Purge()
}
