package entity

import (
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// HistoricalDay агрегированные показатели парка за календарный день
type HistoricalDay struct {
	date              time.Time
	criticalCount     int
	warningCount      int
	healthyCount      int
	predictedFailures int
	actualFailures    int
}

// NewHistoricalDay создает запись дня, все счетчики должны быть неотрицательными.
// Совпадение суммы статусов с размером парка не проверяется.
func NewHistoricalDay(date time.Time, critical, warning, healthy, predicted, actual int) (*HistoricalDay, error) {
	if date.IsZero() {
		return nil, valueobject.NewValidationError("date", "non-zero", date)
	}

	counts := []struct {
		field string
		value int
	}{
		{"critical_count", critical},
		{"warning_count", warning},
		{"healthy_count", healthy},
		{"predicted_failures", predicted},
		{"actual_failures", actual},
	}
	for _, c := range counts {
		if c.value < 0 {
			return nil, valueobject.NewValidationError(c.field, ">= 0", c.value)
		}
	}

	return &HistoricalDay{
		date:              valueobject.TruncateDay(date),
		criticalCount:     critical,
		warningCount:      warning,
		healthyCount:      healthy,
		predictedFailures: predicted,
		actualFailures:    actual,
	}, nil
}

func (d *HistoricalDay) Date() time.Time { return d.date }
func (d *HistoricalDay) CriticalCount() int { return d.criticalCount }
func (d *HistoricalDay) WarningCount() int { return d.warningCount }
func (d *HistoricalDay) HealthyCount() int { return d.healthyCount }
func (d *HistoricalDay) PredictedFailures() int { return d.predictedFailures }
func (d *HistoricalDay) ActualFailures() int { return d.actualFailures }

// TotalMachines сумма статусных корзин за день
func (d *HistoricalDay) TotalMachines() int {
	return d.criticalCount + d.warningCount + d.healthyCount
}
