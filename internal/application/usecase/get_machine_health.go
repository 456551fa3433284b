package usecase

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
)

// Цвета шкалы индикатора
const (
	gaugeBarColor       = "#82BC00"
	gaugeCriticalColor  = "#CE6D28"
	gaugeWarningColor   = "#F1B52C"
	gaugeThresholdColor = "#BA257D"
)

// GetMachineHealthUseCase возвращает состояние одной машины с индикатором и рекомендациями
type GetMachineHealthUseCase struct {
	snapshots  *SnapshotService
	thresholds service.ClassifierThresholds
}

// NewGetMachineHealthUseCase создает новый use case.
// Полосы индикатора строятся по порогам классификатора.
func NewGetMachineHealthUseCase(snapshots *SnapshotService, classifier *service.StatusClassifier) *GetMachineHealthUseCase {
	return &GetMachineHealthUseCase{
		snapshots:  snapshots,
		thresholds: classifier.Thresholds(),
	}
}

// Execute возвращает ErrMachineNotFound, если машины нет в снимке
func (uc *GetMachineHealthUseCase) Execute(ctx context.Context, machineID string) (*dto.MachineHealthDTO, error) {
	m, fleet, err := uc.snapshots.Machine(ctx, machineID)
	if err != nil {
		return nil, err
	}

	return &dto.MachineHealthDTO{
		Machine: dto.FromMachine(m),
		Gauge: dto.GaugeDTO{
			Value:    m.HealthScore().Raw(),
			Min:      valueobject.MinHealthScore,
			Max:      valueobject.MaxHealthScore,
			BarColor: gaugeBarColor,
			Bands: []dto.GaugeBandDTO{
				{From: valueobject.MinHealthScore, To: uc.thresholds.CriticalHealth, Color: gaugeCriticalColor},
				{From: uc.thresholds.CriticalHealth, To: uc.thresholds.WarningHealth, Color: gaugeWarningColor},
			},
			Threshold:      uc.thresholds.CriticalHealth,
			ThresholdColor: gaugeThresholdColor,
		},
		Recommendation: dto.NewRecommendationDTO(m.Status()),
		GeneratedAt:    fleet.GeneratedAt(),
	}, nil
}
