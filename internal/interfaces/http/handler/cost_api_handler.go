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

// CostAPIHandler обрабатывает расчет окупаемости
type CostAPIHandler struct {
	calculateROIUC *usecase.CalculateROIUseCase
	validate       *validator.Validate
	logger         *logger.Logger
}

// NewCostAPIHandler создает новый handler
func NewCostAPIHandler(calculateROIUC *usecase.CalculateROIUseCase, validate *validator.Validate, logger *logger.Logger) *CostAPIHandler {
	return &CostAPIHandler{
		calculateROIUC: calculateROIUC,
		validate:       validate,
		logger:         logger,
	}
}

// GetROI GET /api/v1/cost/roi?maintenance_cost=...
func (h *CostAPIHandler) GetROI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var req dto.ROIRequest

	fields := []struct {
		name string
		dst  **float64
	}{
		{"maintenance_cost", &req.MaintenanceCost},
		{"false_alarm_cost", &req.FalseAlarmCost},
		{"system_cost", &req.SystemCost},
		{"avoided_downtime_cost", &req.AvoidedDowntimeCost},
		{"avoided_repair_cost", &req.AvoidedRepairCost},
		{"production_saved", &req.ProductionSaved},
	}
	for _, f := range fields {
		raw := query.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, h.logger, valueobject.NewValidationError(f.name, "a number", raw))
			return
		}
		*f.dst = &v
	}

	h.calculate(w, r, req)
}

// PostROI POST /api/v1/cost/roi
func (h *CostAPIHandler) PostROI(w http.ResponseWriter, r *http.Request) {
	var req dto.ROIRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.calculate(w, r, req)
}

func (h *CostAPIHandler) calculate(w http.ResponseWriter, r *http.Request, req dto.ROIRequest) {
	if err := validateStruct(h.validate, req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.calculateROIUC.Execute(r.Context(), req.Merge(h.calculateROIUC.Defaults()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
