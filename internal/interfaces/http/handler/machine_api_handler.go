package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// MachineAPIHandler обрабатывает API запросы по машинам
type MachineAPIHandler struct {
	listMachinesUC     *usecase.ListMachinesUseCase
	getMachineHealthUC *usecase.GetMachineHealthUseCase
	logger             *logger.Logger
}

// NewMachineAPIHandler создает новый handler
func NewMachineAPIHandler(
	listMachinesUC *usecase.ListMachinesUseCase,
	getMachineHealthUC *usecase.GetMachineHealthUseCase,
	logger *logger.Logger,
) *MachineAPIHandler {
	return &MachineAPIHandler{
		listMachinesUC:     listMachinesUC,
		getMachineHealthUC: getMachineHealthUC,
		logger:             logger,
	}
}

// ListMachines GET /api/v1/machines?asset_type=&status=&assembly_line=
func (h *MachineAPIHandler) ListMachines(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMachineFilter(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.listMachinesUC.Execute(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

// GetMachine GET /api/v1/machines/{id}
func (h *MachineAPIHandler) GetMachine(w http.ResponseWriter, r *http.Request) {
	health, err := h.getMachineHealthUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, health)
}

// parseMachineFilter принимает повторяющиеся параметры и списки через запятую
func parseMachineFilter(r *http.Request) (service.MachineFilter, error) {
	var filter service.MachineFilter
	query := r.URL.Query()

	for _, raw := range splitValues(query["asset_type"]) {
		t, err := valueobject.ParseAssetType(raw)
		if err != nil {
			return filter, err
		}
		filter.AssetTypes = append(filter.AssetTypes, t)
	}

	for _, raw := range splitValues(query["status"]) {
		s, err := valueobject.ParseStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, s)
	}

	if raw := query.Get("assembly_line"); raw != "" {
		line, err := parseAssemblyLine(raw)
		if err != nil {
			return filter, err
		}
		filter.AssemblyLine = line
	}

	return filter, nil
}

func parseAssemblyLine(raw string) (int, error) {
	line, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || line < 0 {
		return 0, valueobject.NewValidationError("assembly_line", "a non-negative integer", raw)
	}
	return line, nil
}

func splitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
