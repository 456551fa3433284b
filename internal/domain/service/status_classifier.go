package service

import "github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"

// ClassifierThresholds границы статусов. Значение на границе относится к более тяжелому статусу:
// Critical при probability >= CriticalProbability или health <= CriticalHealth,
// Warning при probability >= WarningProbability или health <= WarningHealth.
type ClassifierThresholds struct {
	CriticalProbability float64
	WarningProbability  float64
	CriticalHealth      float64
	WarningHealth       float64
}

// DefaultClassifierThresholds возвращает пороги по умолчанию (0.5/0.2 и 50/70)
func DefaultClassifierThresholds() ClassifierThresholds {
	return ClassifierThresholds{
		CriticalProbability: 0.5,
		WarningProbability:  0.2,
		CriticalHealth:      50,
		WarningHealth:       70,
	}
}

// Validate проверяет, что пороги конечны, в допустимых диапазонах и упорядочены
func (t ClassifierThresholds) Validate() error {
	if err := valueobject.ValidateThreshold("critical_probability", t.CriticalProbability); err != nil {
		return err
	}
	if err := valueobject.ValidateThreshold("warning_probability", t.WarningProbability); err != nil {
		return err
	}
	if _, err := valueobject.NewHealthScore(t.CriticalHealth); err != nil {
		return valueobject.NewValidationError("critical_health", "a finite number in [0, 100]", t.CriticalHealth)
	}
	if _, err := valueobject.NewHealthScore(t.WarningHealth); err != nil {
		return valueobject.NewValidationError("warning_health", "a finite number in [0, 100]", t.WarningHealth)
	}
	if t.WarningProbability >= t.CriticalProbability {
		return valueobject.NewValidationError("warning_probability", "less than critical_probability", t.WarningProbability)
	}
	if t.WarningHealth <= t.CriticalHealth {
		return valueobject.NewValidationError("warning_health", "greater than critical_health", t.WarningHealth)
	}
	return nil
}

// StatusClassifier присваивает машине статус по вероятности отказа и оценке состояния (Domain Service)
type StatusClassifier struct {
	thresholds ClassifierThresholds
}

// NewStatusClassifier создает классификатор с проверкой порогов
func NewStatusClassifier(thresholds ClassifierThresholds) (*StatusClassifier, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &StatusClassifier{thresholds: thresholds}, nil
}

// Thresholds возвращает действующие пороги
func (c *StatusClassifier) Thresholds() ClassifierThresholds {
	return c.thresholds
}

// Classify возвращает ровно один статус для валидной пары (probability, health).
// Значения вне [0,1] и [0,100], NaN и Inf возвращают ValidationError.
func (c *StatusClassifier) Classify(probability, health float64) (valueobject.Status, error) {
	p, err := valueobject.NewFailureProbability(probability)
	if err != nil {
		return "", err
	}
	h, err := valueobject.NewHealthScore(health)
	if err != nil {
		return "", err
	}
	return c.ClassifyValues(p, h), nil
}

// ClassifyValues классифицирует уже проверенные значения
func (c *StatusClassifier) ClassifyValues(p valueobject.FailureProbability, h valueobject.HealthScore) valueobject.Status {
	t := c.thresholds

	switch {
	case p.Raw() >= t.CriticalProbability || h.Raw() <= t.CriticalHealth:
		return valueobject.Critical
	case p.Raw() >= t.WarningProbability || h.Raw() <= t.WarningHealth:
		return valueobject.Warning
	default:
		return valueobject.Healthy
	}
}

