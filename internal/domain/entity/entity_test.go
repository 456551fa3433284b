package entity

import (
	"testing"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T, id string, downtime float64) (*Machine, error) {
	t.Helper()

	h, err := valueobject.NewHealthScore(80)
	require.NoError(t, err)
	p, err := valueobject.NewFailureProbability(0.1)
	require.NoError(t, err)

	return NewMachine(MachineParams{
		ID:                 id,
		AssetType:          valueobject.SMT,
		AssemblyLine:       1,
		HealthScore:        h,
		FailureProbability: p,
		Status:             valueobject.Healthy,
		LastMaintenance:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DowntimeHours:      downtime,
	})
}

func TestNewMachineValidation(t *testing.T) {
	m, err := newTestMachine(t, "NPM-DX_01", 3.5)
	require.NoError(t, err)
	assert.Equal(t, "NPM-DX_01", m.ID())
	assert.False(t, m.IsCritical())
	assert.True(t, m.ExceedsRisk(0.05))

	_, err = newTestMachine(t, "", 1)
	require.ErrorIs(t, err, valueobject.ErrValidation)

	_, err = newTestMachine(t, "NPM-DX_02", -1)
	var vErr *valueobject.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "downtime_hours", vErr.Field)
}

func TestNewHistoricalDayRejectsNegativeCounts(t *testing.T) {
	day := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

	d, err := NewHistoricalDay(day, 1, 2, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, d.TotalMachines())
	assert.Equal(t, 0, d.Date().Hour())

	_, err = NewHistoricalDay(day, 1, 2, 3, -1, 0)
	var vErr *valueobject.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "predicted_failures", vErr.Field)
}

func TestNewMaintenanceEvent(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	e, err := NewMaintenanceEvent("Rack_A01", 2, start, start.AddDate(0, 0, 3), Preventive)
	require.NoError(t, err)
	assert.Equal(t, 3, e.DurationDays())
	assert.False(t, e.Kind().IsUpcoming())

	same, err := NewMaintenanceEvent("Rack_A01", 2, start, start, Available)
	require.NoError(t, err)
	assert.Equal(t, 1, same.DurationDays())
	assert.True(t, same.Kind().IsUpcoming())

	_, err = NewMaintenanceEvent("Rack_A01", 2, start, start.AddDate(0, 0, -1), Corrective)
	require.ErrorIs(t, err, valueobject.ErrValidation)

	_, err = NewMaintenanceEvent("Rack_A01", 2, start, start, MaintenanceKind("Emergency"))
	require.ErrorIs(t, err, valueobject.ErrValidation)
}

func TestFleetSnapshotIsolation(t *testing.T) {
	m, err := newTestMachine(t, "NPM-DX_01", 0)
	require.NoError(t, err)

	src := []*Machine{m}
	snap := NewFleetSnapshot(src, time.Now())
	src[0] = nil

	found, ok := snap.Find("NPM-DX_01")
	require.True(t, ok)
	assert.Same(t, m, found)

	out := snap.Machines()
	out[0] = nil
	assert.Equal(t, 1, snap.Len())
	_, ok = snap.Find("NPM-DX_01")
	assert.True(t, ok)
}
