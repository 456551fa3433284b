package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReturnsCopies(t *testing.T) {
	src := New()
	ctx := context.Background()

	machines, err := src.FetchMachines(ctx)
	require.NoError(t, err)
	require.Len(t, machines, 8)

	machines[0].MachineID = "changed"
	again, err := src.FetchMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NPM-DX_01", again[0].MachineID)
	assert.Equal(t, 2, src.Calls("machines"))
}

func TestSourceErr(t *testing.T) {
	src := New()
	src.SetErr(errors.New("boom"))

	_, err := src.FetchHistory(context.Background())
	assert.EqualError(t, err, "boom")
	_, err = src.FetchMaintenanceEvents(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src.SetErr(nil)
	_, err = src.FetchMachines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryTotals(t *testing.T) {
	var predicted, actual int
	for _, d := range History() {
		predicted += d.PredictedFailures
		actual += d.ActualFailures
		assert.Equal(t, 8, d.CriticalCount+d.WarningCount+d.HealthyCount)
	}
	assert.Equal(t, 8, predicted)
	assert.Equal(t, 6, actual)
}
