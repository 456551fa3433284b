package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func defaultCostInputs() service.CostBenefitInputs {
	return service.CostBenefitInputs{
		MaintenanceCost:     2000,
		FalseAlarmCost:      500,
		SystemCost:          50000,
		AvoidedDowntimeCost: 50000,
		AvoidedRepairCost:   20000,
		ProductionSaved:     30000,
	}
}

func newTestSnapshots(t *testing.T, src *fixture.Source) (*SnapshotService, *testClock) {
	t.Helper()

	classifier, err := service.NewStatusClassifier(service.DefaultClassifierThresholds())
	if err != nil {
		t.Fatalf("NewStatusClassifier() error = %v", err)
	}

	clock := &testClock{now: time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)}
	snapshots := NewSnapshotService(src, classifier, service.NewFleetAggregator(), SnapshotOptions{
		MachinesTTL:    60 * time.Second,
		HistoryTTL:     300 * time.Second,
		MaintenanceTTL: 300 * time.Second,
		Clock:          clock.Now,
	}, nil, logger.Discard())

	return snapshots, clock
}

func newTestOverview(snapshots *SnapshotService) *GetOverviewUseCase {
	return NewGetOverviewUseCase(
		snapshots,
		service.NewFleetAggregator(),
		service.NewHighRiskFilter(),
		service.NewROICalculator(),
		defaultCostInputs(),
		0.5,
	)
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	events   []interface{}
	err      error
}

func (p *fakePublisher) PublishEvent(_ context.Context, subject string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeNotifier struct {
	mu        sync.Mutex
	overviews []*dto.OverviewDTO
	alerts    []*dto.AlertDTO
}

func (n *fakeNotifier) Broadcast(overview *dto.OverviewDTO) {
	n.mu.Lock()
	n.overviews = append(n.overviews, overview)
	n.mu.Unlock()
}

func (n *fakeNotifier) BroadcastAlert(alert *dto.AlertDTO) {
	n.mu.Lock()
	n.alerts = append(n.alerts, alert)
	n.mu.Unlock()
}

func (n *fakeNotifier) ClientCount() int { return 1 }
