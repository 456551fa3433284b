package valueobject

import (
	"fmt"
	"math"
)

const (
	MinHealthScore = 0.0
	MaxHealthScore = 100.0
)

// HealthScore представляет состояние машины на шкале 0..100 (Value Object)
// Иммутабельный объект
type HealthScore struct {
	value float64
}

// NewHealthScore создает HealthScore с валидацией
func NewHealthScore(value float64) (HealthScore, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < MinHealthScore || value > MaxHealthScore {
		return HealthScore{}, NewValidationError("health_score", "a finite number in [0, 100]", value)
	}
	return HealthScore{value: value}, nil
}

// Raw возвращает числовое значение
func (h HealthScore) Raw() float64 {
	return h.value
}

// String возвращает строковое представление
func (h HealthScore) String() string {
	return fmt.Sprintf("%.1f", h.value)
}
