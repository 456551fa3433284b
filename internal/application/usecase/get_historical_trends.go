package usecase

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// GetHistoricalTrendsUseCase возвращает тренды статусов и точность прогноза за период
type GetHistoricalTrendsUseCase struct {
	snapshots *SnapshotService
	evaluator *service.PredictionAccuracyEvaluator
}

// NewGetHistoricalTrendsUseCase создает новый use case
func NewGetHistoricalTrendsUseCase(snapshots *SnapshotService, evaluator *service.PredictionAccuracyEvaluator) *GetHistoricalTrendsUseCase {
	return &GetHistoricalTrendsUseCase{
		snapshots: snapshots,
		evaluator: evaluator,
	}
}

// Execute фильтрует дни по диапазону; nil означает весь доступный период
func (uc *GetHistoricalTrendsUseCase) Execute(ctx context.Context, dateRange *valueobject.DateRange) (*dto.HistoryDTO, error) {
	history, err := uc.snapshots.History(ctx)
	if err != nil {
		return nil, err
	}

	days := history.Days()
	result := &dto.HistoryDTO{
		Days:        []dto.HistoricalDayDTO{},
		GeneratedAt: history.GeneratedAt(),
	}

	if len(days) > 0 {
		result.DataStart = days[0].Date().Format(valueobject.DateLayout)
		result.DataEnd = days[len(days)-1].Date().Format(valueobject.DateLayout)
	}

	var dr valueobject.DateRange
	switch {
	case dateRange != nil:
		dr = *dateRange
	case len(days) > 0:
		dr, err = valueobject.NewDateRange(days[0].Date(), days[len(days)-1].Date())
		if err != nil {
			return nil, err
		}
	default:
		result.Accuracy = dto.AccuracyDTO{AccuracyPercent: uc.evaluator.AccuracyPercent(0, 0)}
		return result, nil
	}

	result.Start = dr.Start().Format(valueobject.DateLayout)
	result.End = dr.End().Format(valueobject.DateLayout)

	for _, d := range uc.evaluator.FilterRange(days, dr) {
		result.Days = append(result.Days, dto.FromHistoricalDay(d))
	}

	acc := uc.evaluator.Evaluate(days, dr)
	result.Accuracy = dto.AccuracyDTO{
		TotalPredicted:  acc.TotalPredicted,
		TotalActual:     acc.TotalActual,
		AccuracyPercent: acc.AccuracyPercent,
	}

	return result, nil
}
