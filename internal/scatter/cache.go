package scatter

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 128

type cacheKey struct {
	params Parameters
	opts   Options
}

// Cache memoizes Compute by parameter set and solver options. Outcomes are
// shared between callers and must be treated as read-only.
type Cache struct {
	entries *lru.Cache[cacheKey, *Outcome]
	hits    atomic.Int64
	misses  atomic.Int64
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, *Outcome](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) Compute(ctx context.Context, p Parameters, opts Options) (*Outcome, error) {
	key := cacheKey{params: p, opts: opts.withDefaults()}
	if out, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return out, nil
	}
	c.misses.Add(1)

	out, err := Compute(ctx, p, key.opts)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, out)
	return out, nil
}

func (c *Cache) Len() int { return c.entries.Len() }

func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Purge() { c.entries.Purge() }
