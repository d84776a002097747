// Package cache provides a short-lived read cache over table-shaped query
// results. It exists purely to reduce read volume against the store, never
// for correctness: every entry expires on a bounded TTL and every write path
// invalidates the keys it touches, forcing a fresh read on the next render.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TableCache wraps an expirable LRU keyed by query name.
type TableCache struct {
	lru *expirable.LRU[string, any]
}

// New creates a TableCache holding up to size entries, each alive for ttl.
func New(size int, ttl time.Duration) *TableCache {
	return &TableCache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// Get returns the cached value for key, if present and not expired.
// A nil receiver is a valid no-op cache.
func (c *TableCache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

// Set stores a value under key.
func (c *TableCache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.lru.Add(key, value)
}

// Invalidate removes the given keys.
func (c *TableCache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		c.lru.Remove(key)
	}
}

// InvalidatePrefix removes every key starting with prefix. History pages
// are cached under per-page keys derived from KeyHistory, so writers sweep
// the prefix instead of tracking which pages were read.
func (c *TableCache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

// Purge drops every entry.
func (c *TableCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Well-known cache keys shared by the read and write paths. KeyHistory is a
// prefix: each history page caches under "history:<limit>:<offset>".
const (
	KeyMembers   = "members"
	KeyHistory   = "history"
	KeyPoolState = "pool_state"
)
