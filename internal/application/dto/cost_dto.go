package dto

import "github.com/dreschagin/maintenance-dashboard/internal/domain/service"

// ROIRequest входные данные калькулятора. Отсутствующие поля берутся из значений по умолчанию.
type ROIRequest struct {
	MaintenanceCost     *float64 `json:"maintenance_cost" validate:"omitempty,gte=0"`
	FalseAlarmCost      *float64 `json:"false_alarm_cost" validate:"omitempty,gte=0"`
	SystemCost          *float64 `json:"system_cost" validate:"omitempty,gte=0"`
	AvoidedDowntimeCost *float64 `json:"avoided_downtime_cost" validate:"omitempty,gte=0"`
	AvoidedRepairCost   *float64 `json:"avoided_repair_cost" validate:"omitempty,gte=0"`
	ProductionSaved     *float64 `json:"production_saved" validate:"omitempty,gte=0"`
}

// Merge накладывает заданные поля запроса на значения по умолчанию
func (r ROIRequest) Merge(defaults service.CostBenefitInputs) service.CostBenefitInputs {
	in := defaults
	pick(&in.MaintenanceCost, r.MaintenanceCost)
	pick(&in.FalseAlarmCost, r.FalseAlarmCost)
	pick(&in.SystemCost, r.SystemCost)
	pick(&in.AvoidedDowntimeCost, r.AvoidedDowntimeCost)
	pick(&in.AvoidedRepairCost, r.AvoidedRepairCost)
	pick(&in.ProductionSaved, r.ProductionSaved)
	return in
}

func pick(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// CostInputsDTO шесть денежных величин калькулятора
type CostInputsDTO struct {
	MaintenanceCost     float64 `json:"maintenance_cost"`
	FalseAlarmCost      float64 `json:"false_alarm_cost"`
	SystemCost          float64 `json:"system_cost"`
	AvoidedDowntimeCost float64 `json:"avoided_downtime_cost"`
	AvoidedRepairCost   float64 `json:"avoided_repair_cost"`
	ProductionSaved     float64 `json:"production_saved"`
}

// BreakdownItemDTO строка графика затрат и выгод
type BreakdownItemDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
}

// ROIResultDTO результат расчета окупаемости
type ROIResultDTO struct {
	Inputs       CostInputsDTO      `json:"inputs"`
	TotalCost    float64            `json:"total_cost"`
	TotalBenefit float64            `json:"total_benefit"`
	NetSavings   float64            `json:"net_savings"`
	ROIPercent   float64            `json:"roi_percent"`
	Breakdown    []BreakdownItemDTO `json:"breakdown"`
}

// NewROIResultDTO конвертирует результат домена в DTO
func NewROIResultDTO(in service.CostBenefitInputs, res *service.CostBenefitResult) *ROIResultDTO {
	breakdown := make([]BreakdownItemDTO, 0, len(res.Breakdown))
	for _, item := range res.Breakdown {
		breakdown = append(breakdown, BreakdownItemDTO{
			Category: item.Category,
			Amount:   item.Amount,
			Type:     string(item.Type),
		})
	}

	return &ROIResultDTO{
		Inputs: CostInputsDTO{
			MaintenanceCost:     in.MaintenanceCost,
			FalseAlarmCost:      in.FalseAlarmCost,
			SystemCost:          in.SystemCost,
			AvoidedDowntimeCost: in.AvoidedDowntimeCost,
			AvoidedRepairCost:   in.AvoidedRepairCost,
			ProductionSaved:     in.ProductionSaved,
		},
		TotalCost:    res.TotalCost,
		TotalBenefit: res.TotalBenefit,
		NetSavings:   res.NetSavings,
		ROIPercent:   res.ROIPercent,
		Breakdown:    breakdown,
	}
}
