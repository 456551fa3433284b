package sqlstore

import (
	"context"
	"fmt"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// FetchMachines читает все машины
func (s *Store) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT machine_id, asset_type, assembly_line, health_score, failure_probability,
		       status, last_maintenance, downtime_hours
		FROM machines
		ORDER BY machine_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query machines: %w", err)
	}
	defer rows.Close()

	machines := make([]port.RawMachine, 0)
	for rows.Next() {
		row, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		raw, err := row.toRaw()
		if err != nil {
			return nil, err
		}
		machines = append(machines, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate machines: %w", err)
	}

	return machines, nil
}

// FetchHistory читает дневные показатели по возрастанию даты
func (s *Store) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, critical_count, warning_count, healthy_count, predicted_failures, actual_failures
		FROM fleet_history
		ORDER BY day
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	days := make([]port.RawHistoricalDay, 0)
	for rows.Next() {
		d, err := scanHistoryDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history day: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return days, nil
}

// FetchMaintenanceEvents читает окна обслуживания по возрастанию начала
func (s *Store) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT machine_id, assembly_line, start_date, end_date, kind
		FROM maintenance_events
		ORDER BY start_date, machine_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance events: %w", err)
	}
	defer rows.Close()

	events := make([]port.RawMaintenanceEvent, 0)
	for rows.Next() {
		e, err := scanMaintenanceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maintenance events: %w", err)
	}

	return events, nil
}

// CountMachines возвращает число машин в таблице
func (s *Store) CountMachines(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM machines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count machines: %w", err)
	}
	return count, nil
}
