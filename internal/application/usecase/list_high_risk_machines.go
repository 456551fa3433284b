package usecase

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
)

// ListHighRiskMachinesUseCase формирует алерты по машинам выше порога риска
type ListHighRiskMachinesUseCase struct {
	snapshots        *SnapshotService
	filter           *service.HighRiskFilter
	defaultThreshold float64
}

// NewListHighRiskMachinesUseCase создает новый use case
func NewListHighRiskMachinesUseCase(snapshots *SnapshotService, filter *service.HighRiskFilter, defaultThreshold float64) *ListHighRiskMachinesUseCase {
	return &ListHighRiskMachinesUseCase{
		snapshots:        snapshots,
		filter:           filter,
		defaultThreshold: defaultThreshold,
	}
}

// DefaultThreshold возвращает порог, используемый без явного параметра
func (uc *ListHighRiskMachinesUseCase) DefaultThreshold() float64 {
	return uc.defaultThreshold
}

// Execute возвращает алерты от наиболее рискованной машины к наименее
func (uc *ListHighRiskMachinesUseCase) Execute(ctx context.Context, threshold float64) (*dto.AlertListDTO, error) {
	fleet, err := uc.snapshots.Fleet(ctx)
	if err != nil {
		return nil, err
	}

	highRisk, err := uc.filter.Filter(fleet.Machines(), threshold)
	if err != nil {
		return nil, err
	}

	alerts := make([]*dto.AlertDTO, 0, len(highRisk))
	for _, m := range highRisk {
		alerts = append(alerts, dto.NewAlertDTO(m, fleet.GeneratedAt()))
	}

	return &dto.AlertListDTO{
		Threshold:   threshold,
		Count:       len(alerts),
		Alerts:      alerts,
		GeneratedAt: fleet.GeneratedAt(),
	}, nil
}
