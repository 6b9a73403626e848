package keywords

import (
	"context"
	"sync"
	"time"
)

// Cache is a single-slot keyword map cache with an injected clock. A build is
// a full catalog scan, so the last result is reused while it is younger than
// the TTL and was made with the same parameters.
type Cache struct {
	mu      sync.Mutex
	builder *Builder
	now     func() time.Time

	builtAt time.Time
	params  BuildParams
	last    *Map
}

func NewCache(builder *Builder, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{builder: builder, now: now}
}

// GetOrBuild returns the cached map when it is fresh, otherwise rebuilds.
// The returned map's Cached flag reports which path was taken.
func (c *Cache) GetOrBuild(ctx context.Context, scanLimit int, params BuildParams, ttl time.Duration, force bool) (*Map, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.last != nil && c.params == params && c.now().Sub(c.builtAt) <= ttl {
		cached := *c.last
		cached.Cached = true
		return &cached, nil
	}

	m, err := c.builder.Build(ctx, scanLimit, params)
	if err != nil {
		return nil, err
	}
	c.last = m
	c.builtAt = c.now()
	c.params = params
	return m, nil
}

// Invalidate drops the cached map.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.last = nil
	c.mu.Unlock()
}
