package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

func TestHighRiskFilterExample(t *testing.T) {
	machines := buildMachines(t,
		machineArgs{id: "A", health: 90, prob: 0.1},
		machineArgs{id: "B", health: 90, prob: 0.35},
		machineArgs{id: "C", health: 90, prob: 0.9},
		machineArgs{id: "D", health: 90, prob: 0.29},
	)

	got, err := NewHighRiskFilter().Filter(machines, DefaultRiskThreshold)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, ids(got))
}

func TestHighRiskFilterProperties(t *testing.T) {
	machines := buildMachines(t,
		machineArgs{id: "m-05", health: 60, prob: 0.5},
		machineArgs{id: "m-01", health: 60, prob: 0.3},
		machineArgs{id: "m-04", health: 60, prob: 0.5},
		machineArgs{id: "m-02", health: 60, prob: 0.31},
		machineArgs{id: "m-03", health: 60, prob: 0.99},
		machineArgs{id: "m-06", health: 60, prob: 0},
	)
	before := ids(machines)

	got, err := NewHighRiskFilter().Filter(machines, 0.3)
	require.NoError(t, err)

	assert.Equal(t, []string{"m-03", "m-04", "m-05", "m-02"}, ids(got))
	assert.Equal(t, before, ids(machines), "input must not be reordered")

	inInput := make(map[string]bool)
	for _, m := range machines {
		inInput[m.ID()] = true
	}
	for i, m := range got {
		assert.True(t, inInput[m.ID()])
		assert.Greater(t, m.FailureProbability().Raw(), 0.3)
		if i > 0 {
			assert.LessOrEqual(t, m.FailureProbability().Raw(), got[i-1].FailureProbability().Raw())
		}
	}
}

func TestHighRiskFilterEmptyAndInvalid(t *testing.T) {
	f := NewHighRiskFilter()

	got, err := f.Filter(nil, 0.3)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.Filter(nil, 1.5)
	require.ErrorIs(t, err, valueobject.ErrValidation)

	count, err := f.Count(buildMachines(t, machineArgs{id: "x", health: 50, prob: 0.51}), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
