package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// AlertAPIHandler обрабатывает прогнозы отказов и действия оператора
type AlertAPIHandler struct {
	listHighRiskUC    *usecase.ListHighRiskMachinesUseCase
	handleAlertAction *usecase.HandleAlertActionUseCase
	validate          *validator.Validate
	logger            *logger.Logger
}

// NewAlertAPIHandler создает новый handler
func NewAlertAPIHandler(
	listHighRiskUC *usecase.ListHighRiskMachinesUseCase,
	handleAlertAction *usecase.HandleAlertActionUseCase,
	validate *validator.Validate,
	logger *logger.Logger,
) *AlertAPIHandler {
	return &AlertAPIHandler{
		listHighRiskUC:    listHighRiskUC,
		handleAlertAction: handleAlertAction,
		validate:          validate,
		logger:            logger,
	}
}

// ListAlerts GET /api/v1/alerts?threshold=
func (h *AlertAPIHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	threshold := h.listHighRiskUC.DefaultThreshold()
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, h.logger, valueobject.NewValidationError("threshold", "a number in [0, 1]", raw))
			return
		}
		threshold = parsed
	}

	alerts, err := h.listHighRiskUC.Execute(r.Context(), threshold)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, alerts)
}

// HandleAction POST /api/v1/alerts/{id}/actions
func (h *AlertAPIHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req dto.AlertActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := validateStruct(h.validate, req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.handleAlertAction.Execute(r.Context(), r.PathValue("id"), dto.AlertAction(req.Action))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if result.Published {
		status = http.StatusAccepted
	}
	writeJSON(w, h.logger, status, result)
}
