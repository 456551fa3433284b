package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// memCache stores JSON like the Redis adapter does.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return c.failGet
	}
	raw, ok := c.data[key]
	if !ok {
		return port.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet != nil {
		return c.failSet
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *memCache) Close() error { return nil }

func newShared(inner port.DataSource, cache port.Cache) *SharedCacheSource {
	return NewSharedCacheSource(inner, cache, "fixture", TTLs{
		Machines:    time.Minute,
		History:     5 * time.Minute,
		Maintenance: 5 * time.Minute,
	}, logger.Discard())
}

func TestSharedCacheSourceReusesFetch(t *testing.T) {
	inner := fixture.New()
	cache := newMemCache()
	src := newShared(inner, cache)
	ctx := context.Background()

	first, err := src.FetchMachines(ctx)
	require.NoError(t, err)
	second, err := src.FetchMachines(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.Calls("machines"))
	assert.Equal(t, first, second)
	assert.Equal(t, time.Minute, cache.ttls["maintenance:fixture:machines"])

	// Another replica with its own inner source reads the shared copy
	other := fixture.New()
	replica := newShared(other, cache)
	_, err = replica.FetchMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, other.Calls("machines"))

	_, err = src.FetchHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cache.ttls["maintenance:fixture:history"])
}

func TestSharedCacheSourceFallsThrough(t *testing.T) {
	inner := fixture.New()
	cache := newMemCache()
	cache.failGet = errors.New("connection refused")
	cache.failSet = errors.New("connection refused")
	src := newShared(inner, cache)

	events, err := src.FetchMaintenanceEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 6)
	assert.Equal(t, 1, inner.Calls("maintenance"))
}

func TestSharedCacheSourceInnerError(t *testing.T) {
	inner := fixture.New()
	inner.SetErr(errors.New("upstream down"))
	cache := newMemCache()

	_, err := newShared(inner, cache).FetchMachines(context.Background())
	assert.EqualError(t, err, "upstream down")
	assert.Empty(t, cache.data)
}

func TestSharedCacheSourcePurge(t *testing.T) {
	inner := fixture.New()
	cache := newMemCache()
	src := newShared(inner, cache)
	ctx := context.Background()

	_, err := src.FetchMachines(ctx)
	require.NoError(t, err)
	cache.data["maintenance:csv:machines"] = []byte("[]")

	require.NoError(t, src.Purge(ctx))
	assert.NotContains(t, cache.data, "maintenance:fixture:machines")
	assert.Contains(t, cache.data, "maintenance:csv:machines")

	_, err = src.FetchMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls("machines"))
}
