package valueobject

import "fmt"

// Status представляет состояние машины (Value Object)
type Status string

const (
	Healthy  Status = "Healthy"
	Warning  Status = "Warning"
	Critical Status = "Critical"
)

// ParseStatus разбирает строковое представление статуса
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate проверяет валидность статуса
func (s Status) Validate() error {
	switch s {
	case Healthy, Warning, Critical:
		return nil
	default:
		return NewValidationError("status", fmt.Sprintf("one of %v", AllStatuses()), string(s))
	}
}

// Severity возвращает порядок серьезности: Healthy < Warning < Critical
func (s Status) Severity() int {
	switch s {
	case Critical:
		return 2
	case Warning:
		return 1
	default:
		return 0
	}
}

// String возвращает строковое представление статуса
func (s Status) String() string {
	return string(s)
}

// AllStatuses возвращает все статусы от наиболее серьезного к наименее
func AllStatuses() []Status {
	return []Status{Critical, Warning, Healthy}
}
