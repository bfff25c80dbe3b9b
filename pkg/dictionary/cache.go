package dictionary

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheShards is the number of shards kept resident when no capacity is configured.
const DefaultCacheShards = 6

// ShardCache keeps a bounded number of parsed shards in memory.
// Eviction is least-recently-used. Concurrent loads of the same shard share a
// single read.
type ShardCache struct {
	entries   *lru.Cache[string, Shard]
	loads     singleflight.Group
	evictions atomic.Int64
	misses    atomic.Int64
}

// NewShardCache creates a cache holding at most capacity shards.
func NewShardCache(capacity int) (*ShardCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheShards
	}
	c := &ShardCache{}
	entries, err := lru.NewWithEvict[string, Shard](capacity, func(string, Shard) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("create shard cache: %w", err)
	}
	c.entries = entries
	return c, nil
}

// Get returns the shard called name, calling load on a miss.
// A failed load is not cached, so the next Get retries it.
func (c *ShardCache) Get(name string, load func() (Shard, error)) (Shard, error) {
	if s, ok := c.entries.Get(name); ok {
		return s, nil
	}

	v, err, _ := c.loads.Do(name, func() (any, error) {
		if s, ok := c.entries.Get(name); ok {
			return s, nil
		}
		c.misses.Add(1)
		s, err := load()
		if err != nil {
			return nil, err
		}
		c.entries.Add(name, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Shard), nil
}

// Contains reports whether name is resident without touching its recency.
func (c *ShardCache) Contains(name string) bool {
	return c.entries.Contains(name)
}

// Names returns the resident shard names, least recently used first.
func (c *ShardCache) Names() []string {
	return c.entries.Keys()
}

// Len returns the number of resident shards.
func (c *ShardCache) Len() int {
	return c.entries.Len()
}

// Stats reports load misses and evictions since creation.
func (c *ShardCache) Stats() (misses, evictions int64) {
	return c.misses.Load(), c.evictions.Load()
}

// Purge drops every resident shard.
func (c *ShardCache) Purge() {
	c.entries.Purge()
}
