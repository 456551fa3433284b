package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
)

// AlertAction действие оператора над алертом
type AlertAction string

const (
	ActionScheduleMaintenance AlertAction = "schedule_maintenance"
	ActionViewDetails         AlertAction = "view_details"
	ActionDismiss             AlertAction = "dismiss"
)

// Message возвращает подтверждение действия для оператора
func (a AlertAction) Message() string {
	switch a {
	case ActionScheduleMaintenance:
		return "Maintenance scheduled!"
	case ActionViewDetails:
		return "Redirecting to machine details..."
	case ActionDismiss:
		return "Alert dismissed"
	default:
		return ""
	}
}

// AlertDTO представляет alert о машине с высоким риском
type AlertDTO struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Level     string      `json:"level"` // "critical", "warning", "info"
	Machine   *MachineDTO `json:"machine"`
	Message   string      `json:"message"`
}

// NewAlertDTO создает новый alert
func NewAlertDTO(m *entity.Machine, now time.Time) *AlertDTO {
	return &AlertDTO{
		ID:        uuid.NewString(),
		Timestamp: now,
		Level:     alertLevel(m),
		Machine:   FromMachine(m),
		Message: fmt.Sprintf("%s - %s - Risk: %.2f%%",
			m.ID(), m.Status().String(), m.FailureProbability().Raw()*100),
	}
}

func alertLevel(m *entity.Machine) string {
	switch {
	case m.IsCritical():
		return "critical"
	case m.Status().Severity() > 0:
		return "warning"
	default:
		return "info"
	}
}

// AlertListDTO ответ страницы прогнозов отказов
type AlertListDTO struct {
	Threshold   float64     `json:"threshold"`
	Count       int         `json:"count"`
	Alerts      []*AlertDTO `json:"alerts"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// AlertActionRequest тело POST /api/v1/alerts/{id}/actions
type AlertActionRequest struct {
	Action string `json:"action" validate:"required,oneof=schedule_maintenance view_details dismiss"`
}

// AlertActionEvent событие, публикуемое в брокер
type AlertActionEvent struct {
	EventID            string    `json:"event_id"`
	Action             string    `json:"action"`
	MachineID          string    `json:"machine_id"`
	AssetType          string    `json:"asset_type"`
	AssemblyLine       int       `json:"assembly_line"`
	Status             string    `json:"status"`
	FailureProbability float64   `json:"failure_probability"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// AlertActionResultDTO ответ на действие оператора
type AlertActionResultDTO struct {
	EventID    string    `json:"event_id"`
	MachineID  string    `json:"machine_id"`
	Action     string    `json:"action"`
	Message    string    `json:"message"`
	Published  bool      `json:"published"`
	Subject    string    `json:"subject,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
