package service

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// ZeroCostROI значение ROI при нулевых затратах. ROI в этом случае не определен,
// система сообщает 0 вместо ошибки.
const ZeroCostROI = 0.0

// BreakdownType тип строки разбивки затрат
type BreakdownType string

const (
	BreakdownCost    BreakdownType = "Cost"
	BreakdownBenefit BreakdownType = "Benefit"
)

// CostBenefitInputs шесть неотрицательных денежных величин, введенных оператором
type CostBenefitInputs struct {
	MaintenanceCost     float64
	FalseAlarmCost      float64
	SystemCost          float64
	AvoidedDowntimeCost float64
	AvoidedRepairCost   float64
	ProductionSaved     float64
}

// CostBreakdownItem строка графика Cost-Benefit: затраты положительные, выгоды отрицательные
type CostBreakdownItem struct {
	Category string
	Amount   float64
	Type     BreakdownType
}

// CostBenefitResult производный результат, нигде не хранится
type CostBenefitResult struct {
	TotalCost    float64
	TotalBenefit float64
	NetSavings   float64
	ROIPercent   float64
	Breakdown    []CostBreakdownItem
}

// ROICalculator считает окупаемость системы предиктивного обслуживания (Domain Service)
type ROICalculator struct{}

// NewROICalculator создает новый ROICalculator
func NewROICalculator() *ROICalculator {
	return &ROICalculator{}
}

// Calculate проверяет все входы и считает итоги. При любой невалидной величине
// возвращается ошибка со всеми нарушениями и никакого частичного результата.
func (c *ROICalculator) Calculate(in CostBenefitInputs) (*CostBenefitResult, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"maintenance_cost", in.MaintenanceCost},
		{"false_alarm_cost", in.FalseAlarmCost},
		{"system_cost", in.SystemCost},
		{"avoided_downtime_cost", in.AvoidedDowntimeCost},
		{"avoided_repair_cost", in.AvoidedRepairCost},
		{"production_saved", in.ProductionSaved},
	}

	var errs *multierror.Error
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			errs = multierror.Append(errs, valueobject.NewValidationError(f.name, "a finite number >= 0", f.value))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	totalCost := sum(in.MaintenanceCost, in.FalseAlarmCost, in.SystemCost)
	totalBenefit := sum(in.AvoidedDowntimeCost, in.AvoidedRepairCost, in.ProductionSaved)
	netSavings := totalBenefit.Sub(totalCost)

	roi := decimal.NewFromFloat(ZeroCostROI)
	if !totalCost.IsZero() {
		roi = netSavings.Div(totalCost).Mul(decimal.NewFromInt(100))
	}

	// Входы конечны, но сумма или отношение могут выйти за пределы float64
	result := &CostBenefitResult{
		TotalCost:    finite(&errs, "total_cost", totalCost),
		TotalBenefit: finite(&errs, "total_benefit", totalBenefit),
		NetSavings:   finite(&errs, "net_savings", netSavings),
		ROIPercent:   finite(&errs, "roi_percent", roi),
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	result.Breakdown = breakdown(in)
	return result, nil
}

func breakdown(in CostBenefitInputs) []CostBreakdownItem {
	return []CostBreakdownItem{
		{Category: "Maintenance", Amount: in.MaintenanceCost, Type: BreakdownCost},
		{Category: "False Alarms", Amount: in.FalseAlarmCost, Type: BreakdownCost},
		{Category: "System Cost", Amount: in.SystemCost, Type: BreakdownCost},
		{Category: "Downtime Avoided", Amount: -in.AvoidedDowntimeCost, Type: BreakdownBenefit},
		{Category: "Repair Avoided", Amount: -in.AvoidedRepairCost, Type: BreakdownBenefit},
		{Category: "Production Saved", Amount: -in.ProductionSaved, Type: BreakdownBenefit},
	}
}

// finite переводит итог в float64 и отмечает ошибку, если он не представим
func finite(errs **multierror.Error, field string, d decimal.Decimal) float64 {
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		*errs = multierror.Append(*errs, valueobject.NewValidationError(field, "a finite result", d.String()))
	}
	return v
}

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
