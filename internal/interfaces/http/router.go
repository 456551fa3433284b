package http

import (
	"context"
	"net/http"

	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/metrics"
	"github.com/dreschagin/maintenance-dashboard/internal/interfaces/http/handler"
	"github.com/dreschagin/maintenance-dashboard/internal/interfaces/http/middleware"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// Handlers собирает HTTP handlers приложения
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Machines  *handler.MachineAPIHandler
	Alerts    *handler.AlertAPIHandler
	Cost      *handler.CostAPIHandler
	History   *handler.HistoryAPIHandler
	WebSocket *handler.WebSocketHandler
}

// Router настраивает маршруты приложения
type Router struct {
	mux      *http.ServeMux
	handlers Handlers
	metrics  *metrics.Metrics
	limiter  *middleware.IPRateLimiter
	ready    func(context.Context) error
	logger   *logger.Logger
}

// NewRouter создает новый router. metrics и limiter могут быть nil.
func NewRouter(
	handlers Handlers,
	metrics *metrics.Metrics,
	limiter *middleware.IPRateLimiter,
	logger *logger.Logger,
) *Router {
	rt := &Router{
		mux:      http.NewServeMux(),
		handlers: handlers,
		metrics:  metrics,
		limiter:  limiter,
		logger:   logger,
	}
	if handlers.Dashboard != nil {
		rt.ready = handlers.Dashboard.Ready
	}
	return rt
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	rt.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(StaticFS())))

	rt.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rt.mux.HandleFunc("GET /readyz", rt.readyz)

	if rt.metrics != nil {
		rt.mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	h := rt.handlers

	// Dashboard
	rt.mux.HandleFunc("GET /{$}", h.Dashboard.ShowDashboard)

	// WebSocket
	rt.mux.HandleFunc("GET /ws", h.WebSocket.HandleConnection)

	// API endpoints
	rt.mux.HandleFunc("GET /api/v1/overview", h.Dashboard.GetOverview)
	rt.mux.HandleFunc("POST /api/v1/refresh", h.Dashboard.Refresh)

	rt.mux.HandleFunc("GET /api/v1/machines", h.Machines.ListMachines)
	rt.mux.HandleFunc("GET /api/v1/machines/{id}", h.Machines.GetMachine)

	rt.mux.HandleFunc("GET /api/v1/alerts", h.Alerts.ListAlerts)
	rt.mux.HandleFunc("POST /api/v1/alerts/{id}/actions", h.Alerts.HandleAction)

	rt.mux.HandleFunc("GET /api/v1/cost/roi", h.Cost.GetROI)
	rt.mux.HandleFunc("POST /api/v1/cost/roi", h.Cost.PostROI)

	rt.mux.HandleFunc("GET /api/v1/history", h.History.GetHistory)
	rt.mux.HandleFunc("GET /api/v1/maintenance", h.History.GetMaintenance)

	// Применяем middleware. Метрики оборачивают mux напрямую, чтобы видеть r.Pattern.
	var handler http.Handler = rt.mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	if rt.limiter != nil {
		handler = middleware.RateLimit(rt.limiter)(handler)
	}
	handler = middleware.Compression(handler)
	handler = middleware.Logger(rt.logger)(handler)
	handler = middleware.Recovery(rt.logger)(handler)

	return handler
}

func (rt *Router) readyz(w http.ResponseWriter, r *http.Request) {
	if rt.ready != nil {
		if err := rt.ready(r.Context()); err != nil {
			rt.logger.Warn("Readiness check failed", "error", err.Error())
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
