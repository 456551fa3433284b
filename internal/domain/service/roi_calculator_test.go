package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

func defaultInputs() CostBenefitInputs {
	return CostBenefitInputs{
		MaintenanceCost:     2000,
		FalseAlarmCost:      500,
		SystemCost:          50000,
		AvoidedDowntimeCost: 50000,
		AvoidedRepairCost:   20000,
		ProductionSaved:     30000,
	}
}

func TestROICalculatorDefaults(t *testing.T) {
	res, err := NewROICalculator().Calculate(defaultInputs())
	require.NoError(t, err)

	assert.Equal(t, 52500.0, res.TotalCost)
	assert.Equal(t, 100000.0, res.TotalBenefit)
	assert.Equal(t, 47500.0, res.NetSavings)
	assert.InDelta(t, 90.476, res.ROIPercent, 0.001)

	require.Len(t, res.Breakdown, 6)
	assert.Equal(t, BreakdownCost, res.Breakdown[0].Type)
	assert.Equal(t, -50000.0, res.Breakdown[3].Amount)
	assert.Equal(t, BreakdownBenefit, res.Breakdown[5].Type)
}

func TestROICalculatorZeroCost(t *testing.T) {
	in := CostBenefitInputs{AvoidedDowntimeCost: 1000}

	res, err := NewROICalculator().Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, ZeroCostROI, res.ROIPercent)
	assert.False(t, math.IsNaN(res.ROIPercent) || math.IsInf(res.ROIPercent, 0))
	assert.Equal(t, 1000.0, res.NetSavings)
}

func TestROICalculatorNetSavingsIdentity(t *testing.T) {
	cases := []CostBenefitInputs{
		defaultInputs(),
		{MaintenanceCost: 0.1, FalseAlarmCost: 0.2, SystemCost: 0.3, AvoidedDowntimeCost: 0.7},
		{MaintenanceCost: 1e9, SystemCost: 3.33, ProductionSaved: 12.5},
		{},
	}

	for _, in := range cases {
		res, err := NewROICalculator().Calculate(in)
		require.NoError(t, err)
		assert.InDelta(t, res.TotalBenefit-res.TotalCost, res.NetSavings, 1e-9)
	}
}

func TestROICalculatorRejectsNegative(t *testing.T) {
	in := defaultInputs()
	in.MaintenanceCost = -100

	res, err := NewROICalculator().Calculate(in)
	assert.Nil(t, res)

	var vErr *valueobject.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "maintenance_cost", vErr.Field)
	assert.True(t, errors.Is(err, valueobject.ErrValidation))
}

func TestROICalculatorReportsEveryInvalidField(t *testing.T) {
	in := defaultInputs()
	in.FalseAlarmCost = math.NaN()
	in.ProductionSaved = -1

	_, err := NewROICalculator().Calculate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false_alarm_cost")
	assert.Contains(t, err.Error(), "production_saved")

	var vErr *valueobject.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "false_alarm_cost", vErr.Field)
}

func TestROICalculatorRejectsOverflowingTotals(t *testing.T) {
	in := defaultInputs()
	in.MaintenanceCost = 1e308
	in.FalseAlarmCost = 1e308

	res, err := NewROICalculator().Calculate(in)
	assert.Nil(t, res)
	require.ErrorIs(t, err, valueobject.ErrValidation)
	assert.Contains(t, err.Error(), "net_savings")

	var vErr *valueobject.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "total_cost", vErr.Field)
	assert.Equal(t, "a finite result", vErr.Constraint)
}

func TestROICalculatorLargeFiniteTotals(t *testing.T) {
	in := CostBenefitInputs{MaintenanceCost: 1e307, AvoidedDowntimeCost: 1e307}

	res, err := NewROICalculator().Calculate(in)
	require.NoError(t, err)
	assert.False(t, math.IsInf(res.TotalCost, 0))
	assert.Equal(t, 0.0, res.NetSavings)
	assert.Equal(t, 0.0, res.ROIPercent)
}
