// Package cache holds short-lived payloads the portal would otherwise
// refetch on every page open: the assembled dashboard overview and the
// last good earnings report kept alongside its ETag.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	deadline time.Time
}

// InMemory is a mutex-guarded TTL cache. A background janitor sweeps
// expired entries so an idle portal does not hold stale payloads.
type InMemory[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     func() time.Time
}

func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
	go c.sweep()
	return c
}

// Get returns the live value for key. Expired entries read as absent
// even before the janitor removes them.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.deadline) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the cache's TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:    value,
		deadline: c.now().Add(c.ttl),
	}
}

// Delete drops one key.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *InMemory[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := c.now()
		for k, e := range c.entries {
			if now.After(e.deadline) {
				delete(c.entries, k)
			}
		}
		c.mu.Unlock()
	}
}
