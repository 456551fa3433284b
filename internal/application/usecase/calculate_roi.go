package usecase

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
)

// CalculateROIUseCase считает окупаемость по вводу оператора
type CalculateROIUseCase struct {
	calculator *service.ROICalculator
	defaults   service.CostBenefitInputs
}

// NewCalculateROIUseCase создает новый use case
func NewCalculateROIUseCase(calculator *service.ROICalculator, defaults service.CostBenefitInputs) *CalculateROIUseCase {
	return &CalculateROIUseCase{
		calculator: calculator,
		defaults:   defaults,
	}
}

// Defaults возвращает значения калькулятора по умолчанию
func (uc *CalculateROIUseCase) Defaults() service.CostBenefitInputs {
	return uc.defaults
}

// Execute возвращает ValidationError для любой отрицательной или нечисловой величины
func (uc *CalculateROIUseCase) Execute(_ context.Context, in service.CostBenefitInputs) (*dto.ROIResultDTO, error) {
	res, err := uc.calculator.Calculate(in)
	if err != nil {
		return nil, err
	}
	return dto.NewROIResultDTO(in, res), nil
}
