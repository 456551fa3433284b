package usecase

import (
	"context"
	"sort"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
)

// GetMaintenanceScheduleUseCase возвращает прошлые и плановые окна обслуживания линии
type GetMaintenanceScheduleUseCase struct {
	snapshots *SnapshotService
}

// NewGetMaintenanceScheduleUseCase создает новый use case
func NewGetMaintenanceScheduleUseCase(snapshots *SnapshotService) *GetMaintenanceScheduleUseCase {
	return &GetMaintenanceScheduleUseCase{snapshots: snapshots}
}

// Execute отбирает окна по сборочной линии (0 - все линии), порядок по дате начала
func (uc *GetMaintenanceScheduleUseCase) Execute(ctx context.Context, assemblyLine int) (*dto.MaintenanceScheduleDTO, error) {
	snapshot, err := uc.snapshots.Maintenance(ctx)
	if err != nil {
		return nil, err
	}

	lineSet := make(map[int]struct{})
	selected := make([]*entity.MaintenanceEvent, 0)

	for _, e := range snapshot.Events() {
		lineSet[e.AssemblyLine()] = struct{}{}
		if assemblyLine > 0 && e.AssemblyLine() != assemblyLine {
			continue
		}
		selected = append(selected, e)
	}

	sortEvents(selected)

	lines := make([]int, 0, len(lineSet))
	for l := range lineSet {
		lines = append(lines, l)
	}
	sort.Ints(lines)

	events := make([]dto.MaintenanceEventDTO, 0, len(selected))
	for _, e := range selected {
		events = append(events, dto.FromMaintenanceEvent(e))
	}

	return &dto.MaintenanceScheduleDTO{
		AssemblyLine: assemblyLine,
		Lines:        lines,
		Count:        len(events),
		Events:       events,
		GeneratedAt:  snapshot.GeneratedAt(),
	}, nil
}
