package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// HandleAlertActionUseCase обрабатывает действие оператора над алертом
// и публикует событие в брокер, если он настроен
type HandleAlertActionUseCase struct {
	snapshots     *SnapshotService
	publisher     port.EventPublisher
	subjectPrefix string
	metrics       port.MetricsRecorder
	logger        *logger.Logger
	now           func() time.Time
}

// NewHandleAlertActionUseCase создает новый use case; publisher может быть nil
func NewHandleAlertActionUseCase(
	snapshots *SnapshotService,
	publisher port.EventPublisher,
	subjectPrefix string,
	metrics port.MetricsRecorder,
	logger *logger.Logger,
) *HandleAlertActionUseCase {
	if metrics == nil {
		metrics = port.NopMetricsRecorder{}
	}
	if subjectPrefix == "" {
		subjectPrefix = "maintenance"
	}

	return &HandleAlertActionUseCase{
		snapshots:     snapshots,
		publisher:     publisher,
		subjectPrefix: subjectPrefix,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// Subject возвращает subject события для действия
func (uc *HandleAlertActionUseCase) Subject(action dto.AlertAction) string {
	return fmt.Sprintf("%s.alerts.%s", uc.subjectPrefix, action)
}

// Execute проверяет действие и машину, затем публикует событие
func (uc *HandleAlertActionUseCase) Execute(ctx context.Context, machineID string, action dto.AlertAction) (*dto.AlertActionResultDTO, error) {
	if action.Message() == "" {
		return nil, valueobject.NewValidationError("action", "one of schedule_maintenance, view_details, dismiss", string(action))
	}

	m, _, err := uc.snapshots.Machine(ctx, machineID)
	if err != nil {
		return nil, err
	}

	event := dto.AlertActionEvent{
		EventID:            uuid.NewString(),
		Action:             string(action),
		MachineID:          m.ID(),
		AssetType:          m.AssetType().String(),
		AssemblyLine:       m.AssemblyLine(),
		Status:             m.Status().String(),
		FailureProbability: m.FailureProbability().Raw(),
		OccurredAt:         uc.now().UTC(),
	}

	result := &dto.AlertActionResultDTO{
		EventID:    event.EventID,
		MachineID:  event.MachineID,
		Action:     event.Action,
		Message:    action.Message(),
		OccurredAt: event.OccurredAt,
	}

	if uc.publisher == nil {
		uc.logger.Info("Alert action acknowledged", "machine_id", m.ID(), "action", action)
		return result, nil
	}

	subject := uc.Subject(action)
	err = uc.publisher.PublishEvent(ctx, subject, event)
	uc.metrics.EventPublished(subject, err)
	if err != nil {
		uc.logger.Error("Failed to publish alert action", err, "machine_id", m.ID(), "subject", subject)
		return nil, fmt.Errorf("failed to publish alert action: %w", err)
	}

	result.Published = true
	result.Subject = subject
	uc.logger.Info("Alert action published", "machine_id", m.ID(), "subject", subject, "event_id", event.EventID)

	return result, nil
}
