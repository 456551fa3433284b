package service

import (
	"errors"
	"slices"
	"sort"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// DefaultHistogramBins количество корзин гистограммы состояния
const DefaultHistogramBins = 20

var errNoMachines = errors.New("no machines to aggregate")

// MachineFilter критерии отбора машин. Пустое множество означает "все".
type MachineFilter struct {
	AssetTypes   []valueobject.AssetType
	Statuses     []valueobject.Status
	AssemblyLine int
}

// IsEmpty сообщает, что фильтр ничего не ограничивает
func (f MachineFilter) IsEmpty() bool {
	return len(f.AssetTypes) == 0 && len(f.Statuses) == 0 && f.AssemblyLine == 0
}

// HealthHistogram равные корзины на [0, 100] с количеством машин по категориям
type HealthHistogram struct {
	Edges  []float64
	Counts map[valueobject.AssetType][]int
}

// FleetAggregator предоставляет сервисы для агрегации парка машин (Domain Service)
// Содержит бизнес-логику, которая не принадлежит одной конкретной машине
type FleetAggregator struct{}

// NewFleetAggregator создает новый FleetAggregator
func NewFleetAggregator() *FleetAggregator {
	return &FleetAggregator{}
}

// CountByStatus считает машины по статусам, все три статуса присутствуют в результате
func (a *FleetAggregator) CountByStatus(machines []*entity.Machine) map[valueobject.Status]int {
	counts := make(map[valueobject.Status]int, 3)
	for _, s := range valueobject.AllStatuses() {
		counts[s] = 0
	}
	for _, m := range machines {
		counts[m.Status()]++
	}
	return counts
}

// FindCritical находит машины в критическом статусе
func (a *FleetAggregator) FindCritical(machines []*entity.Machine) []*entity.Machine {
	critical := make([]*entity.Machine, 0)
	for _, m := range machines {
		if m.IsCritical() {
			critical = append(critical, m)
		}
	}
	return critical
}

// Filter отбирает машины по категории, статусу и сборочной линии
func (a *FleetAggregator) Filter(machines []*entity.Machine, filter MachineFilter) []*entity.Machine {
	result := make([]*entity.Machine, 0, len(machines))
	for _, m := range machines {
		if len(filter.AssetTypes) > 0 && !slices.Contains(filter.AssetTypes, m.AssetType()) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, m.Status()) {
			continue
		}
		if filter.AssemblyLine > 0 && m.AssemblyLine() != filter.AssemblyLine {
			continue
		}
		result = append(result, m)
	}
	return result
}

// HealthHistogram строит гистограмму оценок состояния с bins равными корзинами.
// Значение 100 попадает в последнюю корзину.
func (a *FleetAggregator) HealthHistogram(machines []*entity.Machine, bins int) (*HealthHistogram, error) {
	if bins <= 0 {
		return nil, errors.New("bins must be positive")
	}

	width := valueobject.MaxHealthScore / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = float64(i) * width
	}

	counts := make(map[valueobject.AssetType][]int)
	for _, m := range machines {
		if _, ok := counts[m.AssetType()]; !ok {
			counts[m.AssetType()] = make([]int, bins)
		}
		idx := int(m.HealthScore().Raw() / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[m.AssetType()][idx]++
	}

	return &HealthHistogram{Edges: edges, Counts: counts}, nil
}

// AverageHealth вычисляет среднюю оценку состояния
func (a *FleetAggregator) AverageHealth(machines []*entity.Machine) (float64, error) {
	if len(machines) == 0 {
		return 0, errNoMachines
	}

	var sum float64
	for _, m := range machines {
		sum += m.HealthScore().Raw()
	}

	return sum / float64(len(machines)), nil
}

// TotalDowntime суммирует часы простоя
func (a *FleetAggregator) TotalDowntime(machines []*entity.Machine) float64 {
	var sum float64
	for _, m := range machines {
		sum += m.DowntimeHours()
	}
	return sum
}

// SortByHealth сортирует машины по оценке состояния, при равенстве по id
func (a *FleetAggregator) SortByHealth(machines []*entity.Machine, descending bool) []*entity.Machine {
	sorted := make([]*entity.Machine, len(machines))
	copy(sorted, machines)

	sort.SliceStable(sorted, func(i, j int) bool {
		hi, hj := sorted[i].HealthScore().Raw(), sorted[j].HealthScore().Raw()
		if hi == hj {
			return sorted[i].ID() < sorted[j].ID()
		}
		if descending {
			return hi > hj
		}
		return hi < hj
	})

	return sorted
}

// HealthPercentile вычисляет процентиль оценок состояния
func (a *FleetAggregator) HealthPercentile(machines []*entity.Machine, percentile float64) (float64, error) {
	if len(machines) == 0 {
		return 0, errNoMachines
	}

	if percentile < 0 || percentile > 100 {
		return 0, errors.New("percentile must be between 0 and 100")
	}

	sorted := a.SortByHealth(machines, false)
	index := int(float64(len(sorted)-1) * (percentile / 100.0))

	return sorted[index].HealthScore().Raw(), nil
}
