package valueobject

import (
	"fmt"
	"math"
)

// FailureProbability представляет вероятность отказа 0..1 (Value Object)
type FailureProbability struct {
	value float64
}

// NewFailureProbability создает FailureProbability с валидацией
func NewFailureProbability(value float64) (FailureProbability, error) {
	if err := validateUnitInterval("failure_probability", value); err != nil {
		return FailureProbability{}, err
	}
	return FailureProbability{value: value}, nil
}

// Raw возвращает числовое значение
func (p FailureProbability) Raw() float64 {
	return p.value
}

// Exceeds проверяет, что вероятность строго больше порога
func (p FailureProbability) Exceeds(threshold float64) bool {
	return p.value > threshold
}

// String возвращает значение в процентах
func (p FailureProbability) String() string {
	return fmt.Sprintf("%.2f%%", p.value*100)
}

func validateUnitInterval(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > 1 {
		return NewValidationError(field, "a finite number in [0, 1]", value)
	}
	return nil
}

// ValidateThreshold проверяет порог риска в диапазоне [0, 1]
func ValidateThreshold(field string, value float64) error {
	return validateUnitInterval(field, value)
}
