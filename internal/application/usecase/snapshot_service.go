package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/entity"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// ErrMachineNotFound возвращается, когда машины нет в текущем снимке
var ErrMachineNotFound = errors.New("machine not found")

// Наборы данных, каждый со своим кешем
const (
	DatasetMachines    = "machines"
	DatasetHistory     = "history"
	DatasetMaintenance = "maintenance"
)

// SnapshotOptions параметры кешей снимков
type SnapshotOptions struct {
	MachinesTTL    time.Duration
	HistoryTTL     time.Duration
	MaintenanceTTL time.Duration

	// Clock заменяет time.Now (для тестов)
	Clock func() time.Time
}

// SnapshotService загружает сырые записи из DataSource, проверяет их,
// вычисляет статус машин и держит по одному кешу на набор данных
type SnapshotService struct {
	source     port.DataSource
	classifier *service.StatusClassifier
	aggregator *service.FleetAggregator
	metrics    port.MetricsRecorder
	logger     *logger.Logger
	now        func() time.Time

	machines    *SnapshotCache[*entity.FleetSnapshot]
	history     *SnapshotCache[*entity.HistorySnapshot]
	maintenance *SnapshotCache[*entity.MaintenanceSnapshot]
}

// NewSnapshotService создает сервис снимков
func NewSnapshotService(
	source port.DataSource,
	classifier *service.StatusClassifier,
	aggregator *service.FleetAggregator,
	opts SnapshotOptions,
	metrics port.MetricsRecorder,
	logger *logger.Logger,
) *SnapshotService {
	if metrics == nil {
		metrics = port.NopMetricsRecorder{}
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	s := &SnapshotService{
		source:     source,
		classifier: classifier,
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
		now:        now,
	}

	cacheOpts := []CacheOption{WithCacheClock(now), WithCacheMetrics(metrics)}
	s.machines = NewSnapshotCache(DatasetMachines, opts.MachinesTTL, s.loadFleet, cacheOpts...)
	s.history = NewSnapshotCache(DatasetHistory, opts.HistoryTTL, s.loadHistory, cacheOpts...)
	s.maintenance = NewSnapshotCache(DatasetMaintenance, opts.MaintenanceTTL, s.loadMaintenance, cacheOpts...)

	return s
}

// Fleet возвращает текущий снимок парка
func (s *SnapshotService) Fleet(ctx context.Context) (*entity.FleetSnapshot, error) {
	return s.machines.Get(ctx)
}

// History возвращает текущий ряд дневных показателей
func (s *SnapshotService) History(ctx context.Context) (*entity.HistorySnapshot, error) {
	return s.history.Get(ctx)
}

// Maintenance возвращает текущий список окон обслуживания
func (s *SnapshotService) Maintenance(ctx context.Context) (*entity.MaintenanceSnapshot, error) {
	return s.maintenance.Get(ctx)
}

// Machine ищет машину в текущем снимке
func (s *SnapshotService) Machine(ctx context.Context, id string) (*entity.Machine, *entity.FleetSnapshot, error) {
	fleet, err := s.Fleet(ctx)
	if err != nil {
		return nil, nil, err
	}

	m, ok := fleet.Find(id)
	if !ok {
		return nil, fleet, fmt.Errorf("%w: %s", ErrMachineNotFound, id)
	}
	return m, fleet, nil
}

// Invalidate сбрасывает все кеши
func (s *SnapshotService) Invalidate() {
	s.machines.Invalidate()
	s.history.Invalidate()
	s.maintenance.Invalidate()
}

func (s *SnapshotService) loadFleet(ctx context.Context) (*entity.FleetSnapshot, error) {
	raws, err := s.source.FetchMachines(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch machines", err)
		return nil, fmt.Errorf("failed to fetch machines: %w", err)
	}

	var skipped *multierror.Error
	seen := make(map[string]struct{}, len(raws))
	machines := make([]*entity.Machine, 0, len(raws))

	for _, raw := range raws {
		if _, dup := seen[raw.MachineID]; dup {
			skipped = multierror.Append(skipped, fmt.Errorf("machine %q: duplicate machine_id", raw.MachineID))
			continue
		}

		m, err := s.toMachine(raw)
		if err != nil {
			skipped = multierror.Append(skipped, fmt.Errorf("machine %q: %w", raw.MachineID, err))
			continue
		}

		seen[raw.MachineID] = struct{}{}
		machines = append(machines, m)
	}

	s.reportSkipped(DatasetMachines, skipped)

	counts := s.aggregator.CountByStatus(machines)
	statusCounts := make(map[string]int, len(counts))
	for status, n := range counts {
		statusCounts[status.String()] = n
	}
	s.metrics.FleetStatus(statusCounts)

	s.logger.Debug("Fleet snapshot loaded", "machines", len(machines), "raw", len(raws))

	return entity.NewFleetSnapshot(machines, s.now()), nil
}

// toMachine проверяет сырую запись и вычисляет статус; статус источника игнорируется
func (s *SnapshotService) toMachine(raw port.RawMachine) (*entity.Machine, error) {
	assetType, err := valueobject.ParseAssetType(raw.AssetType)
	if err != nil {
		return nil, err
	}

	health, err := valueobject.NewHealthScore(raw.HealthScore)
	if err != nil {
		return nil, err
	}

	probability, err := valueobject.NewFailureProbability(raw.FailureProbability)
	if err != nil {
		return nil, err
	}

	return entity.NewMachine(entity.MachineParams{
		ID:                 raw.MachineID,
		AssetType:          assetType,
		AssemblyLine:       raw.AssemblyLine,
		HealthScore:        health,
		FailureProbability: probability,
		Status:             s.classifier.ClassifyValues(probability, health),
		LastMaintenance:    raw.LastMaintenance,
		DowntimeHours:      raw.DowntimeHours,
	})
}

func (s *SnapshotService) loadHistory(ctx context.Context) (*entity.HistorySnapshot, error) {
	raws, err := s.source.FetchHistory(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch history", err)
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	var skipped *multierror.Error
	days := make([]*entity.HistoricalDay, 0, len(raws))

	for _, raw := range raws {
		day, err := entity.NewHistoricalDay(raw.Date, raw.CriticalCount, raw.WarningCount,
			raw.HealthyCount, raw.PredictedFailures, raw.ActualFailures)
		if err != nil {
			skipped = multierror.Append(skipped, fmt.Errorf("day %s: %w", raw.Date.Format(valueobject.DateLayout), err))
			continue
		}
		days = append(days, day)
	}

	s.reportSkipped(DatasetHistory, skipped)

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date().Before(days[j].Date())
	})

	return entity.NewHistorySnapshot(days, s.now()), nil
}

func (s *SnapshotService) loadMaintenance(ctx context.Context) (*entity.MaintenanceSnapshot, error) {
	raws, err := s.source.FetchMaintenanceEvents(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch maintenance events", err)
		return nil, fmt.Errorf("failed to fetch maintenance events: %w", err)
	}

	var skipped *multierror.Error
	events := make([]*entity.MaintenanceEvent, 0, len(raws))

	for _, raw := range raws {
		e, err := entity.NewMaintenanceEvent(raw.MachineID, raw.AssemblyLine, raw.Start, raw.End, entity.MaintenanceKind(raw.Type))
		if err != nil {
			skipped = multierror.Append(skipped, fmt.Errorf("event %q: %w", raw.MachineID, err))
			continue
		}
		events = append(events, e)
	}

	s.reportSkipped(DatasetMaintenance, skipped)

	sortEvents(events)

	return entity.NewMaintenanceSnapshot(events, s.now()), nil
}

func (s *SnapshotService) reportSkipped(dataset string, skipped *multierror.Error) {
	if skipped.ErrorOrNil() == nil {
		return
	}

	s.metrics.RecordsSkipped(dataset, len(skipped.Errors))
	s.logger.Warn("Skipping invalid records",
		"dataset", dataset,
		"count", len(skipped.Errors),
		"error", skipped.Error())
}

// sortEvents сортирует окна по началу, затем по машине
func sortEvents(events []*entity.MaintenanceEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start().Equal(events[j].Start()) {
			return events[i].Start().Before(events[j].Start())
		}
		return events[i].MachineID() < events[j].MachineID()
	})
}
