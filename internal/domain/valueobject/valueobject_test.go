package valueobject

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthScoreRejectsOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.1, 100.01, math.NaN(), math.Inf(1)} {
		_, err := NewHealthScore(v)
		require.Error(t, err, "value %v", v)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "health_score", vErr.Field)
		assert.True(t, errors.Is(err, ErrValidation))
	}

	for _, v := range []float64{0, 50, 100} {
		h, err := NewHealthScore(v)
		require.NoError(t, err)
		assert.Equal(t, v, h.Raw())
	}
}

func TestFailureProbabilityBounds(t *testing.T) {
	_, err := NewFailureProbability(1.0001)
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewFailureProbability(-0.5)
	require.ErrorIs(t, err, ErrValidation)

	p, err := NewFailureProbability(0.35)
	require.NoError(t, err)
	assert.True(t, p.Exceeds(0.3))
	assert.False(t, p.Exceeds(0.35))
	assert.Equal(t, "35.00%", p.String())
}

func TestParseAssetType(t *testing.T) {
	at, err := ParseAssetType(" cooling ")
	require.NoError(t, err)
	assert.Equal(t, Cooling, at)

	_, err = ParseAssetType("ROBOT")
	require.ErrorIs(t, err, ErrValidation)
}

func TestStatusSeverityOrder(t *testing.T) {
	assert.Less(t, Healthy.Severity(), Warning.Severity())
	assert.Less(t, Warning.Severity(), Critical.Severity())

	_, err := ParseStatus("Broken")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDateRange(t *testing.T) {
	dr, err := ParseDateRange("2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.False(t, dr.IsEmpty())
	assert.Equal(t, 3, dr.Days())
	assert.True(t, dr.Contains(time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC)))
	assert.False(t, dr.Contains(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))

	reversed, err := ParseDateRange("2024-01-05", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, reversed.IsEmpty())
	assert.Equal(t, 0, reversed.Days())
	assert.False(t, reversed.Contains(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))

	_, err = ParseDateRange("01/01/2024", "2024-01-01")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "start", vErr.Field)
}

func TestDateRangeRejectsZeroDates(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		field string
	}{
		{name: "zero start", start: "0001-01-01", end: "2024-01-01", field: "start"},
		{name: "zero end", start: "2024-01-01", end: "0001-01-01", field: "end"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDateRange(tc.start, tc.end)
			require.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, "a non-zero date", vErr.Constraint)
		})
	}
}
