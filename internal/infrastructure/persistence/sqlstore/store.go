package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/dreschagin/maintenance-dashboard/pkg/config"
)

// Поддерживаемые драйверы
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Схема переносима между PostgreSQL и SQLite: даты хранятся как TEXT YYYY-MM-DD
const schema = `
CREATE TABLE IF NOT EXISTS machines (
	machine_id          TEXT PRIMARY KEY,
	asset_type          TEXT NOT NULL,
	assembly_line       INTEGER NOT NULL DEFAULT 0,
	health_score        DOUBLE PRECISION NOT NULL,
	failure_probability DOUBLE PRECISION NOT NULL,
	status              TEXT NOT NULL DEFAULT '',
	last_maintenance    TEXT NOT NULL DEFAULT '',
	downtime_hours      DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS fleet_history (
	day                TEXT PRIMARY KEY,
	critical_count     INTEGER NOT NULL,
	warning_count      INTEGER NOT NULL,
	healthy_count      INTEGER NOT NULL,
	predicted_failures INTEGER NOT NULL,
	actual_failures    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS maintenance_events (
	machine_id    TEXT NOT NULL,
	assembly_line INTEGER NOT NULL DEFAULT 0,
	start_date    TEXT NOT NULL,
	end_date      TEXT NOT NULL,
	kind          TEXT NOT NULL,
	PRIMARY KEY (machine_id, start_date, kind)
);
CREATE INDEX IF NOT EXISTS idx_maintenance_events_line ON maintenance_events(assembly_line);
`

// Store хранилище записей парка поверх database/sql
type Store struct {
	db     *sql.DB
	driver string
}

// Open открывает соединение по конфигурации и проверяет его
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	driver := cfg.Driver
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db, driver), nil
}

// New оборачивает готовое соединение
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Migrate создает таблицы, если их нет
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// Ping проверяет соединение
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает соединение
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind заменяет ? на $n для PostgreSQL
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
