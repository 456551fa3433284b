package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

type machineArgs struct {
	id     string
	asset  valueobject.AssetType
	line   int
	health float64
	prob   float64
	status valueobject.Status
}

func buildMachines(t *testing.T, args ...machineArgs) []*entity.Machine {
	t.Helper()

	machines := make([]*entity.Machine, 0, len(args))
	for _, s := range args {
		h, err := valueobject.NewHealthScore(s.health)
		require.NoError(t, err)
		p, err := valueobject.NewFailureProbability(s.prob)
		require.NoError(t, err)

		asset := s.asset
		if asset == "" {
			asset = valueobject.SMT
		}
		status := s.status
		if status == "" {
			status = valueobject.Healthy
		}

		m, err := entity.NewMachine(entity.MachineParams{
			ID:                 s.id,
			AssetType:          asset,
			AssemblyLine:       s.line,
			HealthScore:        h,
			FailureProbability: p,
			Status:             status,
			LastMaintenance:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		machines = append(machines, m)
	}
	return machines
}

func ids(machines []*entity.Machine) []string {
	out := make([]string, len(machines))
	for i, m := range machines {
		out[i] = m.ID()
	}
	return out
}
