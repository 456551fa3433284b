package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

const (
	writeWait = 10 * time.Second

	// Клиент должен ответить pong за это время, иначе соединение закрывается
	pongWait = 60 * time.Second

	pingPeriod = pongWait * 9 / 10

	// Dashboard ничего не принимает от браузера, кроме управляющих кадров
	maxMessageSize = 512

	sendBuffer = 64
)

// Client одно подключение браузера к потоку обновлений dashboard
type Client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	logger *logger.Logger
}

// NewClient создает клиента для принятого соединения
func NewClient(hub *Hub, conn *websocket.Conn, logger *logger.Logger) *Client {
	return newClient(hub, conn, sendBuffer, logger)
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int, log *logger.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, buffer),
		logger: log.With("client_id", id),
	}
}

// ID возвращает идентификатор клиента для логов
func (c *Client) ID() string {
	return c.id
}

// ReadPump держит read deadline и замечает закрытие соединения браузером.
// Запускается в отдельной goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Warn("WebSocket set read deadline failed", "error", err.Error())
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket closed unexpectedly", "error", err.Error())
			}
			return
		}
	}
}

// WritePump пишет закодированные hub сообщения и ping кадры.
// Запускается в отдельной goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub отключил клиента или остановился
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("WebSocket write failed", "error", err.Error())
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
