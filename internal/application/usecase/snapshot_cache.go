package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// SnapshotLoader строит свежий снимок
type SnapshotLoader[T any] func(ctx context.Context) (T, error)

// CacheOption настраивает SnapshotCache
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	now     func() time.Time
	metrics port.MetricsRecorder
}

// WithCacheClock заменяет time.Now (для тестов)
func WithCacheClock(now func() time.Time) CacheOption {
	return func(o *cacheOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCacheMetrics отмечает попадания, промахи и перезагрузки
func WithCacheMetrics(m port.MetricsRecorder) CacheOption {
	return func(o *cacheOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// SnapshotCache держит последний снимок и время его построения.
// Get отдает снимок, пока now - generatedAt <= ttl, иначе перезагружает.
// Одновременные промахи разделяют одну загрузку, неудачная загрузка оставляет прежний снимок.
// Загрузка, начатая до Invalidate, не сохраняется.
type SnapshotCache[T any] struct {
	name   string
	ttl    time.Duration
	loader SnapshotLoader[T]
	opts   cacheOptions

	mu          sync.RWMutex
	value       T
	generatedAt time.Time
	loaded      bool
	generation  uint64

	group singleflight.Group
}

// NewSnapshotCache создает кеш одного набора данных
func NewSnapshotCache[T any](name string, ttl time.Duration, loader SnapshotLoader[T], opts ...CacheOption) *SnapshotCache[T] {
	o := cacheOptions{
		now:     time.Now,
		metrics: port.NopMetricsRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &SnapshotCache[T]{
		name:   name,
		ttl:    ttl,
		loader: loader,
		opts:   o,
	}
}

// Get возвращает текущий снимок, загружая его при отсутствии или истечении TTL
func (c *SnapshotCache[T]) Get(ctx context.Context) (T, error) {
	value, generation, ok := c.fresh()
	if ok {
		c.opts.metrics.CacheHit(c.name)
		return value, nil
	}

	c.opts.metrics.CacheMiss(c.name)

	// Загрузку делят все ожидающие, уход первого вызывающего ее не отменяет
	loadCtx := context.WithoutCancel(ctx)

	// Ключ включает поколение: после Invalidate запросы не присоединяются к старой загрузке
	key := c.name + "#" + strconv.FormatUint(generation, 10)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if value, _, ok := c.fresh(); ok {
			return value, nil
		}

		value, err := c.loader(loadCtx)
		c.opts.metrics.CacheRefresh(c.name, err)
		if err != nil {
			return nil, fmt.Errorf("load %s snapshot: %w", c.name, err)
		}

		c.mu.Lock()
		if c.generation == generation {
			c.value = value
			c.generatedAt = c.opts.now()
			c.loaded = true
		}
		c.mu.Unlock()

		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate заставляет следующий Get перезагрузить снимок
func (c *SnapshotCache[T]) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.generation++
	c.mu.Unlock()
}

// GeneratedAt возвращает время построения текущего снимка, нулевое до первой загрузки
func (c *SnapshotCache[T]) GeneratedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generatedAt
}

// TTL возвращает время жизни снимка
func (c *SnapshotCache[T]) TTL() time.Duration {
	return c.ttl
}

func (c *SnapshotCache[T]) fresh() (T, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded || c.opts.now().Sub(c.generatedAt) > c.ttl {
		var zero T
		return zero, c.generation, false
	}
	return c.value, c.generation, true
}
