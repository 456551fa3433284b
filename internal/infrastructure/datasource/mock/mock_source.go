// Package mock generates a synthetic fleet that changes on every machines fetch.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/pkg/config"
)

// BaseMaintenanceDate is the last maintenance of the first generated machine.
var BaseMaintenanceDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Source is a port.DataSource backed by a seeded Generator.
type Source struct {
	mu       sync.Mutex
	gen      *Generator
	perType  int
	days     int
	now      func() time.Time
	machines []port.RawMachine
}

// Option configures a Source.
type Option func(*Source)

// WithClock overrides the clock that anchors history and upcoming windows.
func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// New creates a Source. A zero seed is replaced with the current time.
func New(cfg config.DataConfig, opts ...Option) *Source {
	seed := cfg.MockSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Source{
		gen:     NewGenerator(seed),
		perType: cfg.MockMachines,
		days:    cfg.MockHistoryDays,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchMachines draws a fresh fleet.
func (s *Source) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.machines = s.gen.Machines(s.perType, BaseMaintenanceDate)
	return append([]port.RawMachine(nil), s.machines...), nil
}

// FetchHistory derives history from the most recent fleet.
func (s *Source) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen.History(s.fleet(), s.days, s.now()), nil
}

// FetchMaintenanceEvents derives past and upcoming windows from the most recent fleet.
func (s *Source) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen.Maintenance(s.fleet(), s.now()), nil
}

// fleet must be called with mu held.
func (s *Source) fleet() []port.RawMachine {
	if s.machines == nil {
		s.machines = s.gen.Machines(s.perType, BaseMaintenanceDate)
	}
	return s.machines
}
