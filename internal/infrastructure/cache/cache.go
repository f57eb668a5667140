package cache

import (
	"sync"
	"time"
)

// Cache memoizes a single value together with its insertion time. Expiry
// is checked on read; a mutation of the underlying data must call
// Invalidate explicitly. A zero or negative ttl disables caching.
type Cache[T any] struct {
	mu         sync.Mutex
	value      T
	insertedAt time.Time
	ttl        time.Duration
	valid      bool
}

// New creates a cache with the given time-to-live.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl}
}

// Get returns the cached value if one was set within the ttl.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.ttl <= 0 || time.Since(c.insertedAt) > c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores a value and restarts the ttl clock.
func (c *Cache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = v
	c.insertedAt = time.Now()
	c.valid = true
}

// Invalidate drops the cached value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.valid = false
}
