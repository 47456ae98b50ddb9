package cache

import (
	"log"
	"sync"
	"time"

	"HiddenLight/pkg/logger"
)

type entry[V any] struct {
	value V
	gen   uint64
}

// Cache is a keyed in-memory cache. Entries written to a cache constructed
// with a TTL self-expire via a fire-and-forget timer; a timer armed for a
// since-replaced entry fires as a no-op. Entries written with TTL zero live
// until explicitly invalidated. Caching is an optimization only: callers
// must stay correct with every lookup missing.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	gen     uint64
	ttl     time.Duration
	log     *log.Logger
}

// New builds a cache whose entries expire after ttl; ttl zero disables
// expiry. The name tags expiry logs.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		log:     logger.New("cache." + name),
	}
}

// Get returns the cached value for key, if any.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Set stores value under key and, when a TTL is configured, arms its
// one-shot expiry timer. The timer is not cancellable once armed.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.entries[key] = entry[V]{value: value, gen: gen}
	c.mu.Unlock()

	if c.ttl > 0 {
		time.AfterFunc(c.ttl, func() { c.expire(key, gen) })
	}
}

// Delete removes key immediately.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge drops every entry. Orphaned expiry timers fire as no-ops.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) expire(key string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.gen != gen {
		return
	}
	delete(c.entries, key)
	c.log.Printf("expired %s", key)
}
