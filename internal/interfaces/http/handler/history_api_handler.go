package handler

import (
	"net/http"

	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// HistoryAPIHandler обрабатывает исторические тренды и график обслуживания
type HistoryAPIHandler struct {
	getHistoricalTrendsUC    *usecase.GetHistoricalTrendsUseCase
	getMaintenanceScheduleUC *usecase.GetMaintenanceScheduleUseCase
	logger                   *logger.Logger
}

// NewHistoryAPIHandler создает новый handler
func NewHistoryAPIHandler(
	getHistoricalTrendsUC *usecase.GetHistoricalTrendsUseCase,
	getMaintenanceScheduleUC *usecase.GetMaintenanceScheduleUseCase,
	logger *logger.Logger,
) *HistoryAPIHandler {
	return &HistoryAPIHandler{
		getHistoricalTrendsUC:    getHistoricalTrendsUC,
		getMaintenanceScheduleUC: getMaintenanceScheduleUC,
		logger:                   logger,
	}
}

// GetHistory GET /api/v1/history?start=YYYY-MM-DD&end=YYYY-MM-DD
// Без параметров возвращается весь диапазон данных; нужны оба параметра или ни одного.
func (h *HistoryAPIHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	var dateRange *valueobject.DateRange
	switch {
	case start == "" && end == "":
	case start == "":
		writeError(w, r, h.logger, valueobject.NewValidationError("start", "a date "+valueobject.DateLayout, start))
		return
	case end == "":
		writeError(w, r, h.logger, valueobject.NewValidationError("end", "a date "+valueobject.DateLayout, end))
		return
	default:
		dr, err := valueobject.ParseDateRange(start, end)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		dateRange = &dr
	}

	history, err := h.getHistoricalTrendsUC.Execute(r.Context(), dateRange)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, history)
}

// GetMaintenance GET /api/v1/maintenance?assembly_line=
func (h *HistoryAPIHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	line := 0
	if raw := r.URL.Query().Get("assembly_line"); raw != "" {
		parsed, err := parseAssemblyLine(raw)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		line = parsed
	}

	schedule, err := h.getMaintenanceScheduleUC.Execute(r.Context(), line)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, schedule)
}
