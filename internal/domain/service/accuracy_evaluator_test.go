package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

func buildDays(t *testing.T, start time.Time, predicted, actual []int) []*entity.HistoricalDay {
	t.Helper()
	require.Equal(t, len(predicted), len(actual))

	days := make([]*entity.HistoricalDay, 0, len(predicted))
	for i := range predicted {
		d, err := entity.NewHistoricalDay(start.AddDate(0, 0, i), 1, 5, 30, predicted[i], actual[i])
		require.NoError(t, err)
		days = append(days, d)
	}
	return days
}

func TestAccuracyEvaluatorExample(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days := buildDays(t, start, []int{3, 2}, []int{2, 2})

	dr, err := valueobject.NewDateRange(start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	res := NewPredictionAccuracyEvaluator().Evaluate(days, dr)
	assert.Equal(t, 5, res.TotalPredicted)
	assert.Equal(t, 4, res.TotalActual)
	assert.Equal(t, 75.0, res.AccuracyPercent)
	assert.Equal(t, 2, res.Days)
}

func TestAccuracyEvaluatorEmptyRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days := buildDays(t, start, []int{3, 2, 1}, []int{2, 2, 0})

	dr, err := valueobject.NewDateRange(start.AddDate(0, 0, 2), start)
	require.NoError(t, err)

	res := NewPredictionAccuracyEvaluator().Evaluate(days, dr)
	assert.Equal(t, 0, res.TotalPredicted)
	assert.Equal(t, 0, res.TotalActual)
	assert.Equal(t, 100.0, res.AccuracyPercent)
}

func TestAccuracyEvaluatorInclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days := buildDays(t, start, []int{1, 1, 1, 1}, []int{1, 0, 0, 1})

	dr, err := valueobject.NewDateRange(start.AddDate(0, 0, 1), start.AddDate(0, 0, 2))
	require.NoError(t, err)

	res := NewPredictionAccuracyEvaluator().Evaluate(days, dr)
	assert.Equal(t, 2, res.TotalPredicted)
	assert.Equal(t, 0, res.TotalActual)
	assert.Equal(t, -100.0, res.AccuracyPercent)
}

func TestAccuracyPercentIsUnclamped(t *testing.T) {
	e := NewPredictionAccuracyEvaluator()

	assert.Equal(t, -900.0, e.AccuracyPercent(10, 0))
	assert.Equal(t, 100.0, e.AccuracyPercent(0, 0))
	assert.Equal(t, 0.0, e.AccuracyPercent(0, 4))
	assert.Equal(t, 50.0, e.AccuracyPercent(6, 4))
}
