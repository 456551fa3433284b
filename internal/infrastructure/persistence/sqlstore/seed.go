package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// Dataset набор записей для загрузки в БД
type Dataset struct {
	Machines []port.RawMachine
	History  []port.RawHistoricalDay
	Events   []port.RawMaintenanceEvent
}

// Seed заменяет содержимое таблиц одной транзакцией
func (s *Store) Seed(ctx context.Context, data Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"machines", "fleet_history", "maintenance_events"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.insertMachines(ctx, tx, data.Machines); err != nil {
		return err
	}
	if err := s.insertHistory(ctx, tx, data.History); err != nil {
		return err
	}
	if err := s.insertEvents(ctx, tx, data.Events); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Store) insertMachines(ctx context.Context, tx *sql.Tx, machines []port.RawMachine) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO machines (machine_id, asset_type, assembly_line, health_score, failure_probability,
		                      status, last_maintenance, downtime_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range machines {
		_, err := stmt.ExecContext(ctx,
			m.MachineID,
			m.AssetType,
			m.AssemblyLine,
			m.HealthScore,
			m.FailureProbability,
			m.Status,
			formatDay(m.LastMaintenance),
			m.DowntimeHours,
		)
		if err != nil {
			return fmt.Errorf("failed to insert machine %q: %w", m.MachineID, err)
		}
	}
	return nil
}

func (s *Store) insertHistory(ctx context.Context, tx *sql.Tx, days []port.RawHistoricalDay) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO fleet_history (day, critical_count, warning_count, healthy_count, predicted_failures, actual_failures)
		VALUES (?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range days {
		_, err := stmt.ExecContext(ctx,
			formatDay(d.Date),
			d.CriticalCount,
			d.WarningCount,
			d.HealthyCount,
			d.PredictedFailures,
			d.ActualFailures,
		)
		if err != nil {
			return fmt.Errorf("failed to insert history day %s: %w", formatDay(d.Date), err)
		}
	}
	return nil
}

func (s *Store) insertEvents(ctx context.Context, tx *sql.Tx, events []port.RawMaintenanceEvent) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO maintenance_events (machine_id, assembly_line, start_date, end_date, kind)
		VALUES (?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.ExecContext(ctx, e.MachineID, e.AssemblyLine, formatDay(e.Start), formatDay(e.End), e.Type)
		if err != nil {
			return fmt.Errorf("failed to insert maintenance event for %q: %w", e.MachineID, err)
		}
	}
	return nil
}
