package dto

import (
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
)

// MaintenanceEventDTO окно обслуживания для диаграммы Ганта
type MaintenanceEventDTO struct {
	MachineID    string `json:"machine_id"`
	AssemblyLine int    `json:"assembly_line"`
	Start        string `json:"start"`
	End          string `json:"end"`
	DurationDays int    `json:"duration_days"`
	Type         string `json:"type"`
	Upcoming     bool   `json:"upcoming"`
}

// FromMaintenanceEvent конвертирует Domain Entity в DTO
func FromMaintenanceEvent(e *entity.MaintenanceEvent) MaintenanceEventDTO {
	return MaintenanceEventDTO{
		MachineID:    e.MachineID(),
		AssemblyLine: e.AssemblyLine(),
		Start:        formatDate(e.Start()),
		End:          formatDate(e.End()),
		DurationDays: e.DurationDays(),
		Type:         string(e.Kind()),
		Upcoming:     e.Kind().IsUpcoming(),
	}
}

// MaintenanceScheduleDTO ответ страницы прогноза обслуживания
type MaintenanceScheduleDTO struct {
	AssemblyLine int                   `json:"assembly_line"`
	Lines        []int                 `json:"lines"`
	Count        int                   `json:"count"`
	Events       []MaintenanceEventDTO `json:"events"`
	GeneratedAt  time.Time             `json:"generated_at"`
}
