// Package csvfile reads the fleet from a machines.csv file and derives history
// and maintenance windows from it.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/mock"
)

// Columns is the header the file must contain, in any order.
var Columns = []string{
	"machine_id",
	"asset_type",
	"assembly_line",
	"health_score",
	"failure_probability",
	"status",
	"last_maintenance",
	"downtime_hours",
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Source is a port.DataSource over a CSV file. The file is re-read on every machines fetch.
type Source struct {
	path string
	days int
	now  func() time.Time

	mu  sync.Mutex
	gen *mock.Generator
}

// New creates a CSV source. History covers historyDays days ending today.
func New(path string, historyDays int, seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		path: path,
		days: historyDays,
		now:  time.Now,
		gen:  mock.NewGenerator(seed),
	}
}

// WithClock replaces the clock used for derived datasets.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

func (s *Source) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	machines, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return machines, nil
}

func (s *Source) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	machines, err := s.FetchMachines(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.History(machines, s.days, s.now()), nil
}

func (s *Source) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	machines, err := s.FetchMachines(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Maintenance(machines, s.now()), nil
}

// Parse reads machine rows. Values that do not convert are passed on as out-of-range
// numbers so the snapshot validation skips the row instead of failing the whole file.
func Parse(r io.Reader) ([]port.RawMachine, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		// status is informational only
		if _, ok := index[col]; !ok && col != "status" {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}

	machines := make([]port.RawMachine, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if field("machine_id") == "" && len(record) <= 1 {
			continue
		}

		machines = append(machines, port.RawMachine{
			MachineID:          field("machine_id"),
			AssetType:          field("asset_type"),
			AssemblyLine:       toInt(field("assembly_line")),
			HealthScore:        toFloat(field("health_score")),
			FailureProbability: toFloat(field("failure_probability")),
			Status:             field("status"),
			LastMaintenance:    toTime(field("last_maintenance")),
			DowntimeHours:      toFloat(field("downtime_hours")),
		})
	}

	return machines, nil
}

func toFloat(v string) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil || v == "" {
		return math.NaN()
	}
	return f
}

func toInt(v string) int {
	n, err := cast.ToIntE(v)
	if err != nil || v == "" {
		return -1
	}
	return n
}

func toTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
