// Package fixture provides a deterministic DataSource for tests and demos.
package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// ReferenceDate is the first day of the fixture history.
var ReferenceDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Source returns fixed records. Fields may be replaced before use; Err forces every fetch to fail.
type Source struct {
	mu sync.Mutex

	Machines []port.RawMachine
	History  []port.RawHistoricalDay
	Events   []port.RawMaintenanceEvent
	Err      error

	calls map[string]int
}

// New returns a Source populated with the default fixture set.
func New() *Source {
	return &Source{
		Machines: Machines(),
		History:  History(),
		Events:   Events(),
		calls:    make(map[string]int),
	}
}

func (s *Source) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	if err := s.enter(ctx, "machines"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]port.RawMachine(nil), s.Machines...), nil
}

func (s *Source) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	if err := s.enter(ctx, "history"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]port.RawHistoricalDay(nil), s.History...), nil
}

func (s *Source) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	if err := s.enter(ctx, "maintenance"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]port.RawMaintenanceEvent(nil), s.Events...), nil
}

// Calls reports how many fetches were made for a dataset.
func (s *Source) Calls(dataset string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[dataset]
}

// SetErr replaces Err under the lock.
func (s *Source) SetErr(err error) {
	s.mu.Lock()
	s.Err = err
	s.mu.Unlock()
}

func (s *Source) enter(ctx context.Context, dataset string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[dataset]++
	return s.Err
}

// Machines returns eight machines covering every status and asset type.
//
//	id         type      line health prob  status
//	NPM-DX_01  SMT       1    92     0.05  Healthy
//	NPM-DX_02  SMT       1    65     0.35  Warning
//	NPM-DX_03  SMT       2    45     0.90  Critical
//	Rack_A01   COOLING   2    80     0.29  Warning
//	Rack_A02   COOLING   3    55     0.55  Critical
//	Rack_A03   COOLING   3    75     0.10  Healthy
//	CNV_01     CONVEYOR  1    68     0.15  Warning
//	CNV_02     CONVEYOR  4    98     0.35  Warning
func Machines() []port.RawMachine {
	day := func(offset int) time.Time { return ReferenceDate.AddDate(0, 0, -offset) }

	return []port.RawMachine{
		{MachineID: "NPM-DX_01", AssetType: "SMT", AssemblyLine: 1, HealthScore: 92, FailureProbability: 0.05, LastMaintenance: day(12), DowntimeHours: 1.5},
		{MachineID: "NPM-DX_02", AssetType: "SMT", AssemblyLine: 1, HealthScore: 65, FailureProbability: 0.35, LastMaintenance: day(30), DowntimeHours: 6},
		{MachineID: "NPM-DX_03", AssetType: "SMT", AssemblyLine: 2, HealthScore: 45, FailureProbability: 0.9, LastMaintenance: day(57), DowntimeHours: 20.25},
		{MachineID: "Rack_A01", AssetType: "COOLING", AssemblyLine: 2, HealthScore: 80, FailureProbability: 0.29, LastMaintenance: day(28), DowntimeHours: 3},
		{MachineID: "Rack_A02", AssetType: "COOLING", AssemblyLine: 3, HealthScore: 55, FailureProbability: 0.55, LastMaintenance: day(90), DowntimeHours: 12},
		{MachineID: "Rack_A03", AssetType: "COOLING", AssemblyLine: 3, HealthScore: 75, FailureProbability: 0.1, LastMaintenance: day(7), DowntimeHours: 0},
		{MachineID: "CNV_01", AssetType: "CONVEYOR", AssemblyLine: 1, HealthScore: 68, FailureProbability: 0.15, LastMaintenance: day(14), DowntimeHours: 2},
		{MachineID: "CNV_02", AssetType: "CONVEYOR", AssemblyLine: 4, HealthScore: 98, FailureProbability: 0.35, LastMaintenance: day(3), DowntimeHours: 0.5},
	}
}

// History returns five days starting at ReferenceDate.
// Predicted [3 2 1 0 2], actual [2 2 1 1 0].
func History() []port.RawHistoricalDay {
	predicted := []int{3, 2, 1, 0, 2}
	actual := []int{2, 2, 1, 1, 0}
	critical := []int{2, 2, 1, 1, 2}

	days := make([]port.RawHistoricalDay, 0, len(predicted))
	for i := range predicted {
		days = append(days, port.RawHistoricalDay{
			Date:              ReferenceDate.AddDate(0, 0, i),
			CriticalCount:     critical[i],
			WarningCount:      4,
			HealthyCount:      8 - 4 - critical[i],
			PredictedFailures: predicted[i],
			ActualFailures:    actual[i],
		})
	}
	return days
}

// Events returns historical and upcoming maintenance windows on lines 1, 2 and 4.
func Events() []port.RawMaintenanceEvent {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	return []port.RawMaintenanceEvent{
		{MachineID: "CNV_02", AssemblyLine: 4, Start: d(2024, 2, 1), End: d(2024, 2, 3), Type: "Scheduled"},
		{MachineID: "NPM-DX_02", AssemblyLine: 1, Start: d(2024, 1, 15), End: d(2024, 1, 18), Type: "Available"},
		{MachineID: "NPM-DX_01", AssemblyLine: 1, Start: d(2023, 12, 20), End: d(2023, 12, 22), Type: "Preventive"},
		{MachineID: "NPM-DX_03", AssemblyLine: 2, Start: d(2023, 11, 5), End: d(2023, 11, 6), Type: "Corrective"},
		{MachineID: "Rack_A01", AssemblyLine: 2, Start: d(2023, 12, 1), End: d(2023, 12, 4), Type: "Preventive"},
		{MachineID: "CNV_01", AssemblyLine: 1, Start: d(2024, 1, 10), End: d(2024, 1, 12), Type: "Scheduled"},
	}
}
