package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	wsInfra "github.com/dreschagin/maintenance-dashboard/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// WebSocketHandler подключает браузеры к потоку обновлений dashboard
type WebSocketHandler struct {
	hub            *wsInfra.Hub
	allowedOrigins map[string]struct{}
	allowAny       bool
	upgrader       websocket.Upgrader
	logger         *logger.Logger
}

// NewWebSocketHandler создает новый handler.
// Страница, отданная этим же сервером, проходит проверку Origin всегда;
// allowedOrigins добавляет внешние origin, "*" разрешает любой.
func NewWebSocketHandler(
	hub *wsInfra.Hub,
	allowedOrigins []string,
	logger *logger.Logger,
) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:            hub,
		allowedOrigins: make(map[string]struct{}, len(allowedOrigins)),
		logger:         logger,
	}

	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			h.allowAny = true
			continue
		}
		if normalized, ok := normalizeOrigin(origin); ok {
			h.allowedOrigins[normalized] = struct{}{}
		}
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme + "://" + parsed.Host), true
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.allowAny {
		return true
	}

	origin, ok := normalizeOrigin(strings.TrimSpace(r.Header.Get("Origin")))
	if !ok {
		return false
	}

	if _, ok := h.allowedOrigins[origin]; ok {
		return true
	}

	// Тот же хост, что отдал страницу dashboard
	host := strings.ToLower(r.Host)
	return origin == "http://"+host || origin == "https://"+host
}

// HandleConnection GET /ws. Клиент получает сообщения "overview" и "alert".
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader уже ответил клиенту
		h.logger.Warn("WebSocket upgrade failed", "error", err.Error(), "origin", r.Header.Get("Origin"))
		return
	}

	client := wsInfra.NewClient(h.hub, conn, h.logger)
	h.hub.Register(client)
	h.logger.Info("WebSocket client connected", "client_id", client.ID(), "remote_addr", r.RemoteAddr)

	go client.WritePump()
	go client.ReadPump()
}
