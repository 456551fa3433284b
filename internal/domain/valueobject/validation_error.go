package valueobject

import (
	"errors"
	"fmt"
)

// ErrValidation общая ошибка валидации, ValidationError всегда ей соответствует через errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError описывает входное значение вне допустимой области
type ValidationError struct {
	Field      string
	Constraint string
	Value      interface{}
}

// NewValidationError создает ошибку валидации для поля
func NewValidationError(field, constraint string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Value:      value,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: must be %s, got %v", e.Field, e.Constraint, e.Value)
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
