package service

import (
	"sort"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// DefaultRiskThreshold порог страницы алертов
const DefaultRiskThreshold = 0.3

// HighRiskFilter отбирает и ранжирует машины с высоким риском отказа (Domain Service)
type HighRiskFilter struct{}

// NewHighRiskFilter создает новый HighRiskFilter
func NewHighRiskFilter() *HighRiskFilter {
	return &HighRiskFilter{}
}

// Filter возвращает машины с вероятностью отказа строго выше threshold,
// отсортированные по убыванию вероятности, при равенстве по возрастанию id.
// Входной срез не изменяется, пустой вход дает пустой результат.
func (f *HighRiskFilter) Filter(machines []*entity.Machine, threshold float64) ([]*entity.Machine, error) {
	if err := valueobject.ValidateThreshold("threshold", threshold); err != nil {
		return nil, err
	}

	result := make([]*entity.Machine, 0, len(machines))
	for _, m := range machines {
		if m.ExceedsRisk(threshold) {
			result = append(result, m)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		pi, pj := result[i].FailureProbability().Raw(), result[j].FailureProbability().Raw()
		if pi != pj {
			return pi > pj
		}
		return result[i].ID() < result[j].ID()
	})

	return result, nil
}

// Count возвращает число машин выше порога без сортировки
func (f *HighRiskFilter) Count(machines []*entity.Machine, threshold float64) (int, error) {
	if err := valueobject.ValidateThreshold("threshold", threshold); err != nil {
		return 0, err
	}

	count := 0
	for _, m := range machines {
		if m.ExceedsRisk(threshold) {
			count++
		}
	}
	return count, nil
}
