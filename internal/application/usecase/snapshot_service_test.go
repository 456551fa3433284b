package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
)

func TestSnapshotService_DerivesStatus(t *testing.T) {
	src := fixture.New()
	// Источник утверждает Healthy, но статус вычисляется из показателей
	src.Machines[2].Status = "Healthy"

	snapshots, _ := newTestSnapshots(t, src)

	m, _, err := snapshots.Machine(context.Background(), "NPM-DX_03")
	if err != nil {
		t.Fatalf("Machine() error = %v", err)
	}
	if m.Status() != valueobject.Critical {
		t.Fatalf("expected Critical, got %s", m.Status())
	}

	_, _, err = snapshots.Machine(context.Background(), "missing")
	if !errors.Is(err, ErrMachineNotFound) {
		t.Fatalf("expected ErrMachineNotFound, got %v", err)
	}
}

func TestSnapshotService_CachesWithinTTL(t *testing.T) {
	src := fixture.New()
	snapshots, clock := newTestSnapshots(t, src)
	ctx := context.Background()

	first, err := snapshots.Fleet(ctx)
	if err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}

	clock.Advance(59 * time.Second)
	second, err := snapshots.Fleet(ctx)
	if err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}
	if first != second {
		t.Fatalf("expected the same snapshot inside ttl")
	}
	if src.Calls("machines") != 1 {
		t.Fatalf("expected one fetch, got %d", src.Calls("machines"))
	}

	clock.Advance(2 * time.Second)
	third, err := snapshots.Fleet(ctx)
	if err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}
	if third == first || !third.GeneratedAt().After(first.GeneratedAt()) {
		t.Fatalf("expected a regenerated snapshot after ttl")
	}

	// История живет дольше
	if _, err := snapshots.History(ctx); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	clock.Advance(200 * time.Second)
	if _, err := snapshots.History(ctx); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if src.Calls("history") != 1 {
		t.Fatalf("expected one history fetch, got %d", src.Calls("history"))
	}
}

func TestSnapshotService_FailedLoadDoesNotPoison(t *testing.T) {
	src := fixture.New()
	snapshots, clock := newTestSnapshots(t, src)
	ctx := context.Background()

	src.SetErr(errors.New("upstream unavailable"))
	if _, err := snapshots.Fleet(ctx); err == nil {
		t.Fatalf("expected error from failing source")
	}

	src.SetErr(nil)
	fleet, err := snapshots.Fleet(ctx)
	if err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}
	if fleet.Len() != 8 {
		t.Fatalf("expected 8 machines, got %d", fleet.Len())
	}

	clock.Advance(time.Minute + time.Second)
	src.SetErr(errors.New("upstream unavailable"))
	if _, err := snapshots.Fleet(ctx); err == nil {
		t.Fatalf("expected error after expiry")
	}

	snapshots.Invalidate()
	src.SetErr(nil)
	if _, err := snapshots.Fleet(ctx); err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}
}

func TestSnapshotService_SkipsInvalidRecords(t *testing.T) {
	src := fixture.New()
	src.Machines = append(src.Machines,
		port.RawMachine{MachineID: "BAD_PROB", AssetType: "SMT", HealthScore: 80, FailureProbability: 1.4},
		port.RawMachine{MachineID: "BAD_TYPE", AssetType: "ROBOT", HealthScore: 80, FailureProbability: 0.1},
		port.RawMachine{MachineID: "NPM-DX_01", AssetType: "SMT", HealthScore: 80, FailureProbability: 0.1},
	)
	src.History = append(src.History, port.RawHistoricalDay{Date: fixture.ReferenceDate, PredictedFailures: -1})
	src.Events = append(src.Events, port.RawMaintenanceEvent{
		MachineID: "CNV_01", AssemblyLine: 1,
		Start: fixture.ReferenceDate, End: fixture.ReferenceDate.AddDate(0, 0, -1), Type: "Preventive",
	})

	snapshots, _ := newTestSnapshots(t, src)
	ctx := context.Background()

	fleet, err := snapshots.Fleet(ctx)
	if err != nil {
		t.Fatalf("Fleet() error = %v", err)
	}
	if fleet.Len() != 8 {
		t.Fatalf("expected invalid and duplicate records to be skipped, got %d machines", fleet.Len())
	}

	history, err := snapshots.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history.Days()) != 5 {
		t.Fatalf("expected 5 days, got %d", len(history.Days()))
	}

	maintenance, err := snapshots.Maintenance(ctx)
	if err != nil {
		t.Fatalf("Maintenance() error = %v", err)
	}
	events := maintenance.Events()
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start().Before(events[i-1].Start()) {
			t.Fatalf("events are not sorted by start")
		}
	}
}
