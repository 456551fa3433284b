package entity

import (
	"math"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// Machine представляет запись о состоянии машины (Aggregate Root)
// Создается заново при каждом обновлении снимка и не изменяется после создания
type Machine struct {
	id                 string
	assetType          valueobject.AssetType
	assemblyLine       int
	healthScore        valueobject.HealthScore
	failureProbability valueobject.FailureProbability
	status             valueobject.Status
	lastMaintenance    time.Time
	downtimeHours      float64
}

// MachineParams входные данные для NewMachine
type MachineParams struct {
	ID                 string
	AssetType          valueobject.AssetType
	AssemblyLine       int
	HealthScore        valueobject.HealthScore
	FailureProbability valueobject.FailureProbability
	Status             valueobject.Status
	LastMaintenance    time.Time
	DowntimeHours      float64
}

// NewMachine создает машину с валидацией (Factory Method)
func NewMachine(p MachineParams) (*Machine, error) {
	if p.ID == "" {
		return nil, valueobject.NewValidationError("machine_id", "non-empty", p.ID)
	}

	if err := p.AssetType.Validate(); err != nil {
		return nil, err
	}

	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	if p.AssemblyLine < 0 {
		return nil, valueobject.NewValidationError("assembly_line", "a non-negative integer", p.AssemblyLine)
	}

	if math.IsNaN(p.DowntimeHours) || math.IsInf(p.DowntimeHours, 0) || p.DowntimeHours < 0 {
		return nil, valueobject.NewValidationError("downtime_hours", "a finite number >= 0", p.DowntimeHours)
	}

	return &Machine{
		id:                 p.ID,
		assetType:          p.AssetType,
		assemblyLine:       p.AssemblyLine,
		healthScore:        p.HealthScore,
		failureProbability: p.FailureProbability,
		status:             p.Status,
		lastMaintenance:    p.LastMaintenance,
		downtimeHours:      p.DowntimeHours,
	}, nil
}

// ID возвращает идентификатор машины
func (m *Machine) ID() string {
	return m.id
}

// AssetType возвращает категорию оборудования
func (m *Machine) AssetType() valueobject.AssetType {
	return m.assetType
}

// AssemblyLine возвращает номер сборочной линии (0 - не назначена)
func (m *Machine) AssemblyLine() int {
	return m.assemblyLine
}

// HealthScore возвращает оценку состояния
func (m *Machine) HealthScore() valueobject.HealthScore {
	return m.healthScore
}

// FailureProbability возвращает вероятность отказа
func (m *Machine) FailureProbability() valueobject.FailureProbability {
	return m.failureProbability
}

// Status возвращает статус машины
func (m *Machine) Status() valueobject.Status {
	return m.status
}

// LastMaintenance возвращает время последнего обслуживания
func (m *Machine) LastMaintenance() time.Time {
	return m.lastMaintenance
}

// DowntimeHours возвращает накопленное время простоя в часах
func (m *Machine) DowntimeHours() float64 {
	return m.downtimeHours
}

// Domain Methods (бизнес-логика)

// IsCritical проверяет критический статус
func (m *Machine) IsCritical() bool {
	return m.status == valueobject.Critical
}

// ExceedsRisk проверяет, что вероятность отказа строго выше порога
func (m *Machine) ExceedsRisk(threshold float64) bool {
	return m.failureProbability.Exceeds(threshold)
}
