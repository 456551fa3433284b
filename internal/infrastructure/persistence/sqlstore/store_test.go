package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
	"github.com/dreschagin/maintenance-dashboard/pkg/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, config.DatabaseConfig{
		Driver:       DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "maintenance.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	count, err := store.CountMachines(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.Seed(ctx, Dataset{
		Machines: fixture.Machines(),
		History:  fixture.History(),
		Events:   fixture.Events(),
	}))

	machines, err := store.FetchMachines(ctx)
	require.NoError(t, err)
	require.Len(t, machines, 8)
	assert.Equal(t, "CNV_01", machines[0].MachineID)

	byID := make(map[string]int, len(machines))
	for i, m := range machines {
		byID[m.MachineID] = i
	}
	dx3 := machines[byID["NPM-DX_03"]]
	assert.Equal(t, "SMT", dx3.AssetType)
	assert.Equal(t, 2, dx3.AssemblyLine)
	assert.InDelta(t, 0.9, dx3.FailureProbability, 1e-9)
	assert.InDelta(t, 20.25, dx3.DowntimeHours, 1e-9)
	assert.Equal(t, fixture.ReferenceDate.AddDate(0, 0, -57), dx3.LastMaintenance)

	history, err := store.FetchHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, fixture.ReferenceDate, history[0].Date)
	assert.Equal(t, 3, history[0].PredictedFailures)

	events, err := store.FetchMaintenanceEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 6)
	assert.Equal(t, "NPM-DX_03", events[0].MachineID)
	assert.Equal(t, time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC), events[0].End)
	assert.Equal(t, "Corrective", events[0].Type)
}

func TestStoreSeedReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, Dataset{Machines: fixture.Machines()}))
	require.NoError(t, store.Seed(ctx, Dataset{Machines: fixture.Machines()[:2]}))

	count, err := store.CountMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStoreSeedRollsBackOnConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, Dataset{Machines: fixture.Machines()}))

	dup := append(fixture.Machines()[:1], fixture.Machines()[0])
	require.Error(t, store.Seed(ctx, Dataset{Machines: dup}))

	count, err := store.CountMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
}

func TestRebind(t *testing.T) {
	pg := New(nil, DriverPostgres)
	assert.Equal(t, "SELECT $1, $2", pg.rebind("SELECT ?, ?"))

	lite := New(nil, DriverSQLite)
	assert.Equal(t, "SELECT ?, ?", lite.rebind("SELECT ?, ?"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDay("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseDay("29/02/2024")
	assert.Error(t, err)
}
