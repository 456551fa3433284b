package dto

import (
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// MachineDTO представляет машину для передачи между слоями
type MachineDTO struct {
	MachineID          string  `json:"machine_id"`
	AssetType          string  `json:"asset_type"`
	AssemblyLine       int     `json:"assembly_line"`
	HealthScore        float64 `json:"health_score"`
	FailureProbability float64 `json:"failure_probability"`
	Status             string  `json:"status"`
	LastMaintenance    string  `json:"last_maintenance"`
	DowntimeHours      float64 `json:"downtime_hours"`
}

// FromMachine конвертирует Domain Entity в DTO
func FromMachine(m *entity.Machine) *MachineDTO {
	return &MachineDTO{
		MachineID:          m.ID(),
		AssetType:          m.AssetType().String(),
		AssemblyLine:       m.AssemblyLine(),
		HealthScore:        m.HealthScore().Raw(),
		FailureProbability: m.FailureProbability().Raw(),
		Status:             m.Status().String(),
		LastMaintenance:    formatDate(m.LastMaintenance()),
		DowntimeHours:      m.DowntimeHours(),
	}
}

// ToMachineDTOs конвертирует слайс Entity в слайс DTO
func ToMachineDTOs(machines []*entity.Machine) []*MachineDTO {
	dtos := make([]*MachineDTO, 0, len(machines))
	for _, m := range machines {
		dtos = append(dtos, FromMachine(m))
	}
	return dtos
}

// MachineListDTO ответ списка машин
type MachineListDTO struct {
	Count       int           `json:"count"`
	Machines    []*MachineDTO `json:"machines"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// GaugeBandDTO цветная полоса шкалы
type GaugeBandDTO struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// GaugeDTO параметры индикатора оценки состояния
type GaugeDTO struct {
	Value          float64        `json:"value"`
	Min            float64        `json:"min"`
	Max            float64        `json:"max"`
	BarColor       string         `json:"bar_color"`
	Bands          []GaugeBandDTO `json:"bands"`
	Threshold      float64        `json:"threshold"`
	ThresholdColor string         `json:"threshold_color"`
}

// RecommendationDTO блок рекомендаций для статуса машины
type RecommendationDTO struct {
	Level    string   `json:"level"` // "error", "warning", "success"
	Headline string   `json:"headline"`
	Actions  []string `json:"actions"`
}

// MachineHealthDTO страница состояния одной машины
type MachineHealthDTO struct {
	Machine        *MachineDTO        `json:"machine"`
	Gauge          GaugeDTO           `json:"gauge"`
	Recommendation *RecommendationDTO `json:"recommendation"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// NewRecommendationDTO возвращает рекомендации, соответствующие статусу
func NewRecommendationDTO(status valueobject.Status) *RecommendationDTO {
	switch status {
	case valueobject.Critical:
		return &RecommendationDTO{
			Level:    "error",
			Headline: "IMMEDIATE ACTION REQUIRED",
			Actions: []string{
				"Schedule maintenance within 24 hours",
				"Review recent sensor readings",
				"Prepare replacement parts if needed",
			},
		}
	case valueobject.Warning:
		return &RecommendationDTO{
			Level:    "warning",
			Headline: "PREVENTIVE ACTION RECOMMENDED",
			Actions: []string{
				"Schedule maintenance within 7 days",
				"Monitor sensor trends closely",
				"Review maintenance history",
			},
		}
	default:
		return &RecommendationDTO{
			Level:    "success",
			Headline: "HEALTHY",
			Actions: []string{
				"Continue normal operations",
				"Regular monitoring sufficient",
			},
		}
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(valueobject.DateLayout)
}
