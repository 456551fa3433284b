package port

import (
	"context"

	"github.com/dreschagin/maintenance-dashboard/internal/application/dto"
)

// EventPublisher публикует события действий оператора над алертами.
// event кодируется в JSON, subject имеет вид <prefix>.alerts.<action>.
type EventPublisher interface {
	PublishEvent(ctx context.Context, subject string, event interface{}) error

	// Close дожидается отправки буферизованных событий и закрывает соединение
	Close() error
}

// NotificationService рассылает обновления подключенным браузерам.
// Методы не блокируются: при переполнении очереди сообщение отбрасывается.
type NotificationService interface {
	Broadcast(overview *dto.OverviewDTO)
	BroadcastAlert(alert *dto.AlertDTO)
	ClientCount() int
}
