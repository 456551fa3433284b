package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
)

// GetOverviewUseCase собирает сводку для главной страницы
type GetOverviewUseCase struct {
	snapshots         *SnapshotService
	aggregator        *service.FleetAggregator
	filter            *service.HighRiskFilter
	roi               *service.ROICalculator
	costDefaults      service.CostBenefitInputs
	highRiskThreshold float64
}

// NewGetOverviewUseCase создает новый use case
func NewGetOverviewUseCase(
	snapshots *SnapshotService,
	aggregator *service.FleetAggregator,
	filter *service.HighRiskFilter,
	roi *service.ROICalculator,
	costDefaults service.CostBenefitInputs,
	highRiskThreshold float64,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		snapshots:         snapshots,
		aggregator:        aggregator,
		filter:            filter,
		roi:               roi,
		costDefaults:      costDefaults,
		highRiskThreshold: highRiskThreshold,
	}
}

// Execute возвращает KPI, распределение статусов и гистограмму состояния
func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*dto.OverviewDTO, error) {
	fleet, err := uc.snapshots.Fleet(ctx)
	if err != nil {
		return nil, err
	}

	machines := fleet.Machines()

	highRisk, err := uc.filter.Count(machines, uc.highRiskThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid high-risk threshold: %w", err)
	}

	// Чистая экономия считается по значениям калькулятора по умолчанию
	savings, err := uc.roi.Calculate(uc.costDefaults)
	if err != nil {
		return nil, fmt.Errorf("invalid default cost inputs: %w", err)
	}

	histogram, err := uc.aggregator.HealthHistogram(machines, service.DefaultHistogramBins)
	if err != nil {
		return nil, err
	}

	// Для пустого парка средняя оценка не определена, отдаем 0
	avg, _ := uc.aggregator.AverageHealth(machines)

	breakdown := make(map[string]int, 3)
	for status, n := range uc.aggregator.CountByStatus(machines) {
		breakdown[status.String()] = n
	}

	series := make(map[string][]int, len(histogram.Counts))
	for assetType, counts := range histogram.Counts {
		series[assetType.String()] = counts
	}

	critical := uc.aggregator.FindCritical(machines)

	return &dto.OverviewDTO{
		TotalMachines:     len(machines),
		CriticalMachines:  len(critical),
		HighRiskMachines:  highRisk,
		HighRiskThreshold: uc.highRiskThreshold,
		NetSavings:        savings.NetSavings,
		AverageHealth:     avg,
		TotalDowntime:     uc.aggregator.TotalDowntime(machines),
		StatusBreakdown:   breakdown,
		HealthHistogram: dto.HistogramDTO{
			Edges:  histogram.Edges,
			Series: series,
		},
		Critical:    dto.ToMachineDTOs(uc.aggregator.SortByHealth(critical, false)),
		GeneratedAt: fleet.GeneratedAt(),
	}, nil
}
