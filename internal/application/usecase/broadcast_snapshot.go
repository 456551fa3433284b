package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// BroadcastSnapshotUseCase рассылает сводку и критические алерты при смене снимка парка
type BroadcastSnapshotUseCase struct {
	snapshots  *SnapshotService
	overview   *GetOverviewUseCase
	aggregator *service.FleetAggregator
	notifier   port.NotificationService
	logger     *logger.Logger

	mu       sync.Mutex
	lastSent time.Time
}

// NewBroadcastSnapshotUseCase создает новый use case
func NewBroadcastSnapshotUseCase(
	snapshots *SnapshotService,
	overview *GetOverviewUseCase,
	aggregator *service.FleetAggregator,
	notifier port.NotificationService,
	logger *logger.Logger,
) *BroadcastSnapshotUseCase {
	return &BroadcastSnapshotUseCase{
		snapshots:  snapshots,
		overview:   overview,
		aggregator: aggregator,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute возвращает true, если снимок новый и был разослан
func (uc *BroadcastSnapshotUseCase) Execute(ctx context.Context) (bool, error) {
	fleet, err := uc.snapshots.Fleet(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get fleet snapshot: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if fleet.GeneratedAt().Equal(uc.lastSent) {
		return false, nil
	}

	overview, err := uc.overview.Execute(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to build overview: %w", err)
	}

	// Рассылаем через WebSocket
	uc.notifier.Broadcast(overview)

	// Отправляем alerts для критических машин
	critical := uc.aggregator.FindCritical(fleet.Machines())
	for _, m := range critical {
		uc.notifier.BroadcastAlert(dto.NewAlertDTO(m, fleet.GeneratedAt()))
	}

	uc.lastSent = fleet.GeneratedAt()

	uc.logger.Debug("Fleet snapshot broadcasted",
		"client_count", uc.notifier.ClientCount(),
		"critical", len(critical),
		"generated_at", fleet.GeneratedAt())

	return true, nil
}
