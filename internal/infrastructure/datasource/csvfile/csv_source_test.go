package csvfile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `machine_id,asset_type,assembly_line,health_score,failure_probability,status,last_maintenance,downtime_hours
NPM-DX_01,SMT,1,92.5,0.05,Healthy,2024-01-01,1.5
Rack_A01, COOLING ,2,45,0.55,Critical,2024-01-08,12
BAD_01,SMT,x,abc,0.1,Healthy,not-a-date,2
`

func TestParse(t *testing.T) {
	machines, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, machines, 3)

	first := machines[0]
	assert.Equal(t, "NPM-DX_01", first.MachineID)
	assert.Equal(t, "SMT", first.AssetType)
	assert.Equal(t, 1, first.AssemblyLine)
	assert.InDelta(t, 92.5, first.HealthScore, 1e-9)
	assert.InDelta(t, 0.05, first.FailureProbability, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.LastMaintenance)

	assert.Equal(t, "COOLING", machines[1].AssetType)

	bad := machines[2]
	assert.Equal(t, -1, bad.AssemblyLine)
	assert.True(t, math.IsNaN(bad.HealthScore))
	assert.True(t, bad.LastMaintenance.IsZero())
}

func TestParseReorderedHeader(t *testing.T) {
	csv := "health_score,machine_id,failure_probability,asset_type,assembly_line,last_maintenance,downtime_hours\n80,CNV_01,0.2,CONVEYOR,3,2024-02-01,0\n"
	machines, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, machines, 1)
	assert.Equal(t, "CNV_01", machines[0].MachineID)
	assert.Equal(t, 3, machines[0].AssemblyLine)
	assert.Empty(t, machines[0].Status)
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("machine_id,asset_type\nA,SMT\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestSourceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machines.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := New(path, 7, 5).WithClock(func() time.Time { return today })
	ctx := context.Background()

	machines, err := src.FetchMachines(ctx)
	require.NoError(t, err)
	assert.Len(t, machines, 3)

	history, err := src.FetchHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 7)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), history[6].Date)

	events, err := src.FetchMaintenanceEvents(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
}

func TestSourceMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv"), 7, 1).FetchMachines(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
