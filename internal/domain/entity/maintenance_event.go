package entity

import (
	"fmt"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// MaintenanceKind тип окна обслуживания
type MaintenanceKind string

const (
	Preventive MaintenanceKind = "Preventive"
	Corrective MaintenanceKind = "Corrective"
	Scheduled  MaintenanceKind = "Scheduled"
	Available  MaintenanceKind = "Available"
)

// Validate проверяет валидность типа обслуживания
func (k MaintenanceKind) Validate() error {
	switch k {
	case Preventive, Corrective, Scheduled, Available:
		return nil
	default:
		return valueobject.NewValidationError("type", fmt.Sprintf("one of %v", []MaintenanceKind{Preventive, Corrective, Scheduled, Available}), string(k))
	}
}

// IsUpcoming сообщает, что окно относится к будущему плану, а не к истории
func (k MaintenanceKind) IsUpcoming() bool {
	return k == Scheduled || k == Available
}

// MaintenanceEvent окно обслуживания машины на сборочной линии
type MaintenanceEvent struct {
	machineID    string
	assemblyLine int
	start        time.Time
	end          time.Time
	kind         MaintenanceKind
}

// NewMaintenanceEvent создает событие, end не может быть раньше start
func NewMaintenanceEvent(machineID string, assemblyLine int, start, end time.Time, kind MaintenanceKind) (*MaintenanceEvent, error) {
	if machineID == "" {
		return nil, valueobject.NewValidationError("machine_id", "non-empty", machineID)
	}
	if assemblyLine < 0 {
		return nil, valueobject.NewValidationError("assembly_line", "a non-negative integer", assemblyLine)
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() {
		return nil, valueobject.NewValidationError("start", "non-zero", start)
	}
	if end.Before(start) {
		return nil, valueobject.NewValidationError("end", "not before start", end.Format(valueobject.DateLayout))
	}

	return &MaintenanceEvent{
		machineID:    machineID,
		assemblyLine: assemblyLine,
		start:        start,
		end:          end,
		kind:         kind,
	}, nil
}

func (e *MaintenanceEvent) MachineID() string { return e.machineID }
func (e *MaintenanceEvent) AssemblyLine() int { return e.assemblyLine }
func (e *MaintenanceEvent) Start() time.Time { return e.start }
func (e *MaintenanceEvent) End() time.Time { return e.end }
func (e *MaintenanceEvent) Kind() MaintenanceKind { return e.kind }

// DurationDays длительность окна в днях, минимум один день
func (e *MaintenanceEvent) DurationDays() int {
	days := int(e.end.Sub(e.start).Round(24*time.Hour).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
