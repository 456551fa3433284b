// Package datasource holds decorators shared by every DataSource implementation.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/cache/redis"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// Dataset names used in cache keys
const (
	DatasetMachines    = "machines"
	DatasetHistory     = "history"
	DatasetMaintenance = "maintenance"
)

// TTLs sets the shared cache lifetime per dataset.
type TTLs struct {
	Machines    time.Duration
	History     time.Duration
	Maintenance time.Duration
}

// SharedCacheSource wraps a DataSource with a shared cache so several replicas
// reuse one upstream fetch per TTL window. Cache failures fall through to the inner source.
type SharedCacheSource struct {
	inner  port.DataSource
	cache  port.Cache
	source string
	ttls   TTLs
	logger *logger.Logger
}

// NewSharedCacheSource creates the decorator; source is the kind name used in keys.
func NewSharedCacheSource(inner port.DataSource, cache port.Cache, source string, ttls TTLs, logger *logger.Logger) *SharedCacheSource {
	return &SharedCacheSource{
		inner:  inner,
		cache:  cache,
		source: source,
		ttls:   ttls,
		logger: logger,
	}
}

func (s *SharedCacheSource) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	return fetch(ctx, s, DatasetMachines, s.ttls.Machines, s.inner.FetchMachines)
}

func (s *SharedCacheSource) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	return fetch(ctx, s, DatasetHistory, s.ttls.History, s.inner.FetchHistory)
}

func (s *SharedCacheSource) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	return fetch(ctx, s, DatasetMaintenance, s.ttls.Maintenance, s.inner.FetchMaintenanceEvents)
}

// Purge drops every cached dataset of this source.
func (s *SharedCacheSource) Purge(ctx context.Context) error {
	pattern := redis.SourcePattern(s.source)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("purge shared cache: %w", err)
	}
	return nil
}

func fetch[T any](ctx context.Context, s *SharedCacheSource, dataset string, ttl time.Duration, load func(context.Context) ([]T, error)) ([]T, error) {
	key := redis.GenerateCacheKey(s.source, dataset)

	var cached []T
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		s.logger.Debug("Shared cache hit", "key", key)
		return cached, nil
	}
	if !errors.Is(err, port.ErrCacheMiss) {
		s.logger.Warn("Shared cache read failed", "key", key, "error", err.Error())
	}

	fresh, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, fresh, ttl); err != nil {
		s.logger.Warn("Shared cache write failed", "key", key, "error", err.Error())
	}

	return fresh, nil
}
