package handler

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// DashboardHandler обслуживает страницу dashboard и сводку парка
type DashboardHandler struct {
	getOverviewUC *usecase.GetOverviewUseCase
	snapshots     *usecase.SnapshotService
	purge         func(context.Context) error
	static        fs.FS
	logger        *logger.Logger
}

// NewDashboardHandler создает новый handler. purge может быть nil, если общего кеша нет.
func NewDashboardHandler(
	getOverviewUC *usecase.GetOverviewUseCase,
	snapshots *usecase.SnapshotService,
	purge func(context.Context) error,
	static fs.FS,
	logger *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		getOverviewUC: getOverviewUC,
		snapshots:     snapshots,
		purge:         purge,
		static:        static,
		logger:        logger,
	}
}

// ShowDashboard отдает index.html
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		h.logger.Error("Failed to read dashboard page", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// GetOverview GET /api/v1/overview
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.getOverviewUC.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, overview)
}

// Refresh POST /api/v1/refresh сбрасывает снимки и общий кеш
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.purge != nil {
		if err := h.purge(r.Context()); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}
	h.snapshots.Invalidate()
	h.logger.Info("Snapshots invalidated", "shared_cache", h.purge != nil)

	w.WriteHeader(http.StatusNoContent)
}

// Ready проверяет, что снимок парка может быть получен
func (h *DashboardHandler) Ready(ctx context.Context) error {
	_, err := h.snapshots.Fleet(ctx)
	return err
}
