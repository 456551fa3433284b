package port

import (
	"context"
	"time"
)

// RawMachine запись о машине в том виде, в котором ее отдает источник.
// Status источника не используется: статус всегда вычисляется классификатором.
type RawMachine struct {
	MachineID          string    `json:"machine_id"`
	AssetType          string    `json:"asset_type"`
	AssemblyLine       int       `json:"assembly_line"`
	HealthScore        float64   `json:"health_score"`
	FailureProbability float64   `json:"failure_probability"`
	Status             string    `json:"status,omitempty"`
	LastMaintenance    time.Time `json:"last_maintenance"`
	DowntimeHours      float64   `json:"downtime_hours"`
}

// RawHistoricalDay дневные показатели парка от источника
type RawHistoricalDay struct {
	Date              time.Time `json:"date"`
	CriticalCount     int       `json:"critical_count"`
	WarningCount      int       `json:"warning_count"`
	HealthyCount      int       `json:"healthy_count"`
	PredictedFailures int       `json:"predicted_failures"`
	ActualFailures    int       `json:"actual_failures"`
}

// RawMaintenanceEvent окно обслуживания от источника
type RawMaintenanceEvent struct {
	MachineID    string    `json:"machine_id"`
	AssemblyLine int       `json:"assembly_line"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Type         string    `json:"type"`
}

// DataSource определяет интерфейс получения данных парка (Port)
// Реализации: mock, fixture, csv, sql, http
type DataSource interface {
	// FetchMachines возвращает текущее состояние всех машин
	FetchMachines(ctx context.Context) ([]RawMachine, error)

	// FetchHistory возвращает дневные показатели
	FetchHistory(ctx context.Context) ([]RawHistoricalDay, error)

	// FetchMaintenanceEvents возвращает прошлые и запланированные окна обслуживания
	FetchMaintenanceEvents(ctx context.Context) ([]RawMaintenanceEvent, error)
}
