package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

func TestStatusClassifierBoundaries(t *testing.T) {
	c, err := NewStatusClassifier(DefaultClassifierThresholds())
	require.NoError(t, err)

	tests := []struct {
		name   string
		prob   float64
		health float64
		want   valueobject.Status
	}{
		{name: "healthy", prob: 0.1, health: 90, want: valueobject.Healthy},
		{name: "critical probability boundary", prob: 0.5, health: 90, want: valueobject.Critical},
		{name: "just below critical probability", prob: 0.4999, health: 90, want: valueobject.Warning},
		{name: "warning probability boundary", prob: 0.2, health: 90, want: valueobject.Warning},
		{name: "just below warning probability", prob: 0.1999, health: 90, want: valueobject.Healthy},
		{name: "critical health boundary", prob: 0, health: 50, want: valueobject.Critical},
		{name: "just above critical health", prob: 0, health: 50.01, want: valueobject.Warning},
		{name: "warning health boundary", prob: 0, health: 70, want: valueobject.Warning},
		{name: "just above warning health", prob: 0, health: 70.01, want: valueobject.Healthy},
		{name: "severe health wins over low probability", prob: 0.01, health: 10, want: valueobject.Critical},
		{name: "extremes", prob: 1, health: 0, want: valueobject.Critical},
		{name: "perfect", prob: 0, health: 100, want: valueobject.Healthy},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				got, err := c.Classify(tc.prob, tc.health)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestStatusClassifierExactlyOneLabel(t *testing.T) {
	c, err := NewStatusClassifier(DefaultClassifierThresholds())
	require.NoError(t, err)

	for p := 0.0; p <= 1.0; p += 0.05 {
		for h := 0.0; h <= 100.0; h += 2.5 {
			got, err := c.Classify(p, h)
			require.NoError(t, err)
			require.NoError(t, got.Validate())
		}
	}
}

func TestStatusClassifierRejectsOutOfRange(t *testing.T) {
	c, err := NewStatusClassifier(DefaultClassifierThresholds())
	require.NoError(t, err)

	tests := []struct {
		name   string
		prob   float64
		health float64
		field  string
	}{
		{name: "negative probability", prob: -0.1, health: 80, field: "failure_probability"},
		{name: "probability above one", prob: 1.1, health: 80, field: "failure_probability"},
		{name: "NaN probability", prob: math.NaN(), health: 80, field: "failure_probability"},
		{name: "negative health", prob: 0.1, health: -1, field: "health_score"},
		{name: "infinite health", prob: 0.1, health: math.Inf(1), field: "health_score"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Classify(tc.prob, tc.health)
			var vErr *valueobject.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestClassifierThresholdsValidate(t *testing.T) {
	bad := DefaultClassifierThresholds()
	bad.WarningProbability = 0.6
	_, err := NewStatusClassifier(bad)
	require.ErrorIs(t, err, valueobject.ErrValidation)

	bad = DefaultClassifierThresholds()
	bad.WarningHealth = 40
	_, err = NewStatusClassifier(bad)
	require.ErrorIs(t, err, valueobject.ErrValidation)

	bad = DefaultClassifierThresholds()
	bad.CriticalProbability = math.NaN()
	_, err = NewStatusClassifier(bad)
	require.ErrorIs(t, err, valueobject.ErrValidation)
}
