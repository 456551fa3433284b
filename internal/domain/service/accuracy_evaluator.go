package service

import (
	"math"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// AccuracyFloorDenominator нижняя граница знаменателя, когда фактических отказов нет.
// При total_actual = 0 и predicted > 0 формула занижает ошибку, результат не ограничивается.
const AccuracyFloorDenominator = 1

// AccuracyResult итог сравнения прогноза с фактом в диапазоне дат
type AccuracyResult struct {
	TotalPredicted  int
	TotalActual     int
	AccuracyPercent float64
	Days            int
}

// PredictionAccuracyEvaluator сравнивает прогнозируемые и фактические отказы (Domain Service)
type PredictionAccuracyEvaluator struct{}

// NewPredictionAccuracyEvaluator создает новый PredictionAccuracyEvaluator
func NewPredictionAccuracyEvaluator() *PredictionAccuracyEvaluator {
	return &PredictionAccuracyEvaluator{}
}

// FilterRange возвращает дни, попадающие во включающий диапазон
func (e *PredictionAccuracyEvaluator) FilterRange(days []*entity.HistoricalDay, dr valueobject.DateRange) []*entity.HistoricalDay {
	result := make([]*entity.HistoricalDay, 0, len(days))
	if dr.IsEmpty() {
		return result
	}
	for _, d := range days {
		if dr.Contains(d.Date()) {
			result = append(result, d)
		}
	}
	return result
}

// Evaluate суммирует прогноз и факт по дням диапазона и считает точность.
// Пустой диапазон дает 0/0/100.
func (e *PredictionAccuracyEvaluator) Evaluate(days []*entity.HistoricalDay, dr valueobject.DateRange) AccuracyResult {
	inRange := e.FilterRange(days, dr)

	var predicted, actual int
	for _, d := range inRange {
		predicted += d.PredictedFailures()
		actual += d.ActualFailures()
	}

	return AccuracyResult{
		TotalPredicted:  predicted,
		TotalActual:     actual,
		AccuracyPercent: e.AccuracyPercent(predicted, actual),
		Days:            len(inRange),
	}
}

// AccuracyPercent (1 - |P - A| / max(A, 1)) * 100 без ограничения результата
func (e *PredictionAccuracyEvaluator) AccuracyPercent(totalPredicted, totalActual int) float64 {
	denominator := math.Max(float64(totalActual), AccuracyFloorDenominator)
	delta := math.Abs(float64(totalPredicted - totalActual))
	return (1 - delta/denominator) * 100
}
