package entity

import "time"

// FleetSnapshot неизменяемый снимок парка машин на момент генерации
type FleetSnapshot struct {
	machines    []*Machine
	generatedAt time.Time
}

// NewFleetSnapshot создает снимок, срез копируется
func NewFleetSnapshot(machines []*Machine, generatedAt time.Time) *FleetSnapshot {
	return &FleetSnapshot{
		machines:    append([]*Machine(nil), machines...),
		generatedAt: generatedAt,
	}
}

// Machines возвращает копию списка машин
func (s *FleetSnapshot) Machines() []*Machine {
	return append([]*Machine(nil), s.machines...)
}

// Len возвращает размер парка
func (s *FleetSnapshot) Len() int {
	return len(s.machines)
}

// Find ищет машину по идентификатору
func (s *FleetSnapshot) Find(id string) (*Machine, bool) {
	for _, m := range s.machines {
		if m.ID() == id {
			return m, true
		}
	}
	return nil, false
}

// GeneratedAt возвращает время генерации снимка
func (s *FleetSnapshot) GeneratedAt() time.Time {
	return s.generatedAt
}

// HistorySnapshot неизменяемый ряд дневных показателей, отсортированный по дате
type HistorySnapshot struct {
	days        []*HistoricalDay
	generatedAt time.Time
}

func NewHistorySnapshot(days []*HistoricalDay, generatedAt time.Time) *HistorySnapshot {
	return &HistorySnapshot{
		days:        append([]*HistoricalDay(nil), days...),
		generatedAt: generatedAt,
	}
}

func (s *HistorySnapshot) Days() []*HistoricalDay {
	return append([]*HistoricalDay(nil), s.days...)
}

func (s *HistorySnapshot) GeneratedAt() time.Time {
	return s.generatedAt
}

// MaintenanceSnapshot неизменяемый список окон обслуживания
type MaintenanceSnapshot struct {
	events      []*MaintenanceEvent
	generatedAt time.Time
}

func NewMaintenanceSnapshot(events []*MaintenanceEvent, generatedAt time.Time) *MaintenanceSnapshot {
	return &MaintenanceSnapshot{
		events:      append([]*MaintenanceEvent(nil), events...),
		generatedAt: generatedAt,
	}
}

func (s *MaintenanceSnapshot) Events() []*MaintenanceEvent {
	return append([]*MaintenanceEvent(nil), s.events...)
}

func (s *MaintenanceSnapshot) GeneratedAt() time.Time {
	return s.generatedAt
}
