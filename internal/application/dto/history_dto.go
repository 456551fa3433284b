package dto

import (
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
)

// HistoricalDayDTO дневные показатели
type HistoricalDayDTO struct {
	Date              string `json:"date"`
	CriticalCount     int    `json:"critical_count"`
	WarningCount      int    `json:"warning_count"`
	HealthyCount      int    `json:"healthy_count"`
	PredictedFailures int    `json:"predicted_failures"`
	ActualFailures    int    `json:"actual_failures"`
}

// FromHistoricalDay конвертирует Domain Entity в DTO
func FromHistoricalDay(d *entity.HistoricalDay) HistoricalDayDTO {
	return HistoricalDayDTO{
		Date:              formatDate(d.Date()),
		CriticalCount:     d.CriticalCount(),
		WarningCount:      d.WarningCount(),
		HealthyCount:      d.HealthyCount(),
		PredictedFailures: d.PredictedFailures(),
		ActualFailures:    d.ActualFailures(),
	}
}

// AccuracyDTO метрики качества прогноза
type AccuracyDTO struct {
	TotalPredicted  int     `json:"total_predicted"`
	TotalActual     int     `json:"total_actual"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// HistoryDTO ответ страницы исторических трендов
type HistoryDTO struct {
	Start       string             `json:"start"`
	End         string             `json:"end"`
	DataStart   string             `json:"data_start"`
	DataEnd     string             `json:"data_end"`
	Days        []HistoricalDayDTO `json:"days"`
	Accuracy    AccuracyDTO        `json:"accuracy"`
	GeneratedAt time.Time          `json:"generated_at"`
}
