package dictionary

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constLoader(s Shard) func() (Shard, error) {
	return func() (Shard, error) { return s, nil }
}

func TestShardCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewShardCache(DefaultCacheShards)
	require.NoError(t, err)

	for i := 0; i < DefaultCacheShards; i++ {
		_, err := c.Get(fmt.Sprintf("s%d", i), constLoader(Shard{}))
		require.NoError(t, err)
	}
	// Touch the oldest so it becomes the most recent.
	_, err = c.Get("s0", func() (Shard, error) {
		t.Fatal("s0 should be resident")
		return nil, nil
	})
	require.NoError(t, err)

	_, err = c.Get("s6", constLoader(Shard{}))
	require.NoError(t, err)

	assert.Equal(t, DefaultCacheShards, c.Len())
	assert.True(t, c.Contains("s0"), "recently used shard survives")
	assert.False(t, c.Contains("s1"), "least recently used shard is evicted")

	misses, evictions := c.Stats()
	assert.Equal(t, int64(7), misses)
	assert.Equal(t, int64(1), evictions)
	assert.Equal(t, []string{"s2", "s3", "s4", "s5", "s0", "s6"}, c.Names())
}

func TestShardCache_FailedLoadNotCached(t *testing.T) {
	c, err := NewShardCache(2)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.Get("a", func() (Shard, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Contains("a"))

	s, err := c.Get("a", constLoader(Shard{"x": "y"}))
	require.NoError(t, err)
	assert.Equal(t, "y", s["x"])
}

func TestShardCache_ConcurrentLoadsShareOneRead(t *testing.T) {
	c, err := NewShardCache(2)
	require.NoError(t, err)

	var loads atomic.Int32
	release := make(chan struct{})
	load := func() (Shard, error) {
		loads.Add(1)
		<-release
		return Shard{"k": "v"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Get("same", load)
			assert.NoError(t, err)
			assert.Equal(t, "v", s["k"])
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}

func TestShardCache_DefaultCapacity(t *testing.T) {
	c, err := NewShardCache(0)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, _ = c.Get(fmt.Sprintf("s%d", i), constLoader(Shard{}))
	}
	assert.Equal(t, DefaultCacheShards, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}
