package mock

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// Line count used when assigning generated machines to assembly lines.
const Lines = 5

// Generator draws synthetic fleet data. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Machines generates perType machines for SMT and COOLING and a fifth as many conveyors.
func (g *Generator) Machines(perType int, base time.Time) []port.RawMachine {
	conveyors := perType / 5
	if conveyors < 1 {
		conveyors = 1
	}

	machines := make([]port.RawMachine, 0, 2*perType+conveyors)
	add := func(id, assetType string) {
		i := len(machines)
		machines = append(machines, port.RawMachine{
			MachineID:          id,
			AssetType:          assetType,
			AssemblyLine:       i%Lines + 1,
			HealthScore:        round(g.uniform(40, 100), 1),
			FailureProbability: round(g.uniform(0, 0.6), 3),
			LastMaintenance:    base.AddDate(0, 0, 7*i),
			DowntimeHours:      round(g.uniform(0, 24), 2),
		})
	}

	for i := 1; i <= perType; i++ {
		add(fmt.Sprintf("NPM-DX_%02d", i), "SMT")
	}
	for i := 1; i <= perType; i++ {
		add(fmt.Sprintf("Rack_A%02d", i), "COOLING")
	}
	for i := 1; i <= conveyors; i++ {
		add(fmt.Sprintf("CNV_%02d", i), "CONVEYOR")
	}

	return machines
}

// History derives daily counts ending at today by resampling each machine's probability.
func (g *Generator) History(machines []port.RawMachine, days int, today time.Time) []port.RawHistoricalDay {
	today = midnight(today)
	out := make([]port.RawHistoricalDay, 0, days)

	for i := days - 1; i >= 0; i-- {
		var critical, warning, healthy int
		for _, m := range machines {
			// Higher lines drift more
			lineNoise := float64(m.AssemblyLine-1) * 0.06
			p := m.FailureProbability + (g.rng.Float64()-0.5)*0.25 + (g.rng.Float64()-0.5)*lineNoise
			p = math.Max(0, math.Min(1, p))

			switch {
			case p > 0.6:
				critical++
			case p > 0.3:
				warning++
			default:
				healthy++
			}
		}

		out = append(out, port.RawHistoricalDay{
			Date:              today.AddDate(0, 0, -i),
			CriticalCount:     max(0, critical+g.rng.Intn(2)-1),
			WarningCount:      max(0, warning+g.rng.Intn(3)-1),
			HealthyCount:      max(0, healthy+g.rng.Intn(2)-1),
			PredictedFailures: int(float64(critical)*0.6 + g.rng.Float64()*2),
			ActualFailures:    int(float64(critical)*0.5 + g.rng.Float64()*1.5),
		})
	}

	return out
}

// Maintenance builds 3-6 past windows per machine counting back from its last maintenance,
// plus 1-2 upcoming slots within 90 days of today.
func (g *Generator) Maintenance(machines []port.RawMachine, today time.Time) []port.RawMaintenanceEvent {
	today = midnight(today)
	out := make([]port.RawMaintenanceEvent, 0, len(machines)*6)

	for _, m := range machines {
		base := today
		if !m.LastMaintenance.IsZero() {
			base = midnight(m.LastMaintenance)
		}

		count := 3 + g.rng.Intn(4)
		for i := 0; i < count; i++ {
			gap := 20 + g.rng.Intn(120)
			end := base.AddDate(0, 0, -i*gap)
			start := end.AddDate(0, 0, -(1 + g.rng.Intn(4)))

			kind := "Preventive"
			if g.rng.Float64() < 0.25 {
				kind = "Corrective"
			}

			out = append(out, port.RawMaintenanceEvent{
				MachineID:    m.MachineID,
				AssemblyLine: m.AssemblyLine,
				Start:        start,
				End:          end,
				Type:         kind,
			})
		}

		slots := 1 + g.rng.Intn(2)
		for i := 0; i < slots; i++ {
			start := today.AddDate(0, 0, 10+g.rng.Intn(80))

			kind, duration := "Available", 3
			if g.rng.Float64() > 0.4 {
				kind, duration = "Scheduled", 2+g.rng.Intn(2)
			}

			out = append(out, port.RawMaintenanceEvent{
				MachineID:    m.MachineID,
				AssemblyLine: m.AssemblyLine,
				Start:        start,
				End:          start.AddDate(0, 0, duration),
				Type:         kind,
			})
		}
	}

	return out
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
