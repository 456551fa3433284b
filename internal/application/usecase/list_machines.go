package usecase

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
)

// ListMachinesUseCase возвращает машины с фильтрами по категории, статусу и линии
type ListMachinesUseCase struct {
	snapshots  *SnapshotService
	aggregator *service.FleetAggregator
}

// NewListMachinesUseCase создает новый use case
func NewListMachinesUseCase(snapshots *SnapshotService, aggregator *service.FleetAggregator) *ListMachinesUseCase {
	return &ListMachinesUseCase{
		snapshots:  snapshots,
		aggregator: aggregator,
	}
}

// Execute выполняет отбор машин
func (uc *ListMachinesUseCase) Execute(ctx context.Context, filter service.MachineFilter) (*dto.MachineListDTO, error) {
	fleet, err := uc.snapshots.Fleet(ctx)
	if err != nil {
		return nil, err
	}

	machines := uc.aggregator.Filter(fleet.Machines(), filter)

	return &dto.MachineListDTO{
		Count:       len(machines),
		Machines:    dto.ToMachineDTOs(machines),
		GeneratedAt: fleet.GeneratedAt(),
	}, nil
}
