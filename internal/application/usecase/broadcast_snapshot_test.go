package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

func TestBroadcastSnapshotUseCase_OnlyOnNewGeneration(t *testing.T) {
	snapshots, clock := newTestSnapshots(t, fixture.New())
	notifier := &fakeNotifier{}
	uc := NewBroadcastSnapshotUseCase(snapshots, newTestOverview(snapshots), service.NewFleetAggregator(), notifier, logger.Discard())
	ctx := context.Background()

	sent, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !sent {
		t.Fatalf("expected first execution to broadcast")
	}
	if len(notifier.overviews) != 1 || len(notifier.alerts) != 2 {
		t.Fatalf("expected 1 overview and 2 alerts, got %d and %d", len(notifier.overviews), len(notifier.alerts))
	}

	clock.Advance(10 * time.Second)
	sent, err = uc.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if sent {
		t.Fatalf("expected no broadcast for the same snapshot")
	}

	clock.Advance(time.Minute)
	sent, err = uc.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !sent || len(notifier.overviews) != 2 {
		t.Fatalf("expected a second broadcast after ttl")
	}
}
