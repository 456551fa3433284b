package sqlstore

import (
	"fmt"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// machineRow представляет машину в БД
type machineRow struct {
	MachineID          string
	AssetType          string
	AssemblyLine       int
	HealthScore        float64
	FailureProbability float64
	Status             string
	LastMaintenance    string
	DowntimeHours      float64
}

func scanMachine(row rowScanner) (*machineRow, error) {
	var m machineRow
	err := row.Scan(
		&m.MachineID,
		&m.AssetType,
		&m.AssemblyLine,
		&m.HealthScore,
		&m.FailureProbability,
		&m.Status,
		&m.LastMaintenance,
		&m.DowntimeHours,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *machineRow) toRaw() (port.RawMachine, error) {
	last, err := parseDay(m.LastMaintenance)
	if err != nil {
		return port.RawMachine{}, fmt.Errorf("machine %q last_maintenance: %w", m.MachineID, err)
	}
	return port.RawMachine{
		MachineID:          m.MachineID,
		AssetType:          m.AssetType,
		AssemblyLine:       m.AssemblyLine,
		HealthScore:        m.HealthScore,
		FailureProbability: m.FailureProbability,
		Status:             m.Status,
		LastMaintenance:    last,
		DowntimeHours:      m.DowntimeHours,
	}, nil
}

func scanHistoryDay(row rowScanner) (port.RawHistoricalDay, error) {
	var (
		day string
		d   port.RawHistoricalDay
	)
	if err := row.Scan(&day, &d.CriticalCount, &d.WarningCount, &d.HealthyCount, &d.PredictedFailures, &d.ActualFailures); err != nil {
		return d, err
	}

	date, err := parseDay(day)
	if err != nil {
		return d, fmt.Errorf("history day: %w", err)
	}
	d.Date = date
	return d, nil
}

func scanMaintenanceEvent(row rowScanner) (port.RawMaintenanceEvent, error) {
	var (
		start, end string
		e          port.RawMaintenanceEvent
	)
	if err := row.Scan(&e.MachineID, &e.AssemblyLine, &start, &end, &e.Type); err != nil {
		return e, err
	}

	var err error
	if e.Start, err = parseDay(start); err != nil {
		return e, fmt.Errorf("maintenance %q start: %w", e.MachineID, err)
	}
	if e.End, err = parseDay(end); err != nil {
		return e, fmt.Errorf("maintenance %q end: %w", e.MachineID, err)
	}
	return e, nil
}

// parseDay принимает YYYY-MM-DD и RFC 3339; пустая строка означает отсутствие даты
func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(valueobject.DateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(valueobject.DateLayout)
}
