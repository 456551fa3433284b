package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dreschagin/maintenance-dashboard/pkg/config"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// NATSPublisher implements port.EventPublisher over core NATS
type NATSPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

// NewNATSPublisher connects to NATS with reconnects enabled
func NewNATSPublisher(cfg config.NATSConfig, log *logger.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("maintenance-dashboard"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Connected to NATS", "url", cfg.URL, "subject_prefix", cfg.SubjectPrefix)

	return &NATSPublisher{
		nc:     nc,
		logger: log,
	}, nil
}

// PublishEvent publishes a JSON-encoded event and flushes within the context deadline
func (p *NATSPublisher) PublishEvent(ctx context.Context, subject string, event interface{}) error {
	msg, err := newMessage(subject, event)
	if err != nil {
		return err
	}

	if err := p.nc.PublishMsg(msg); err != nil {
		p.logger.Error("Failed to publish event", err, "subject", subject)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if _, ok := ctx.Deadline(); ok {
		if err := p.nc.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("failed to flush event: %w", err)
		}
	}

	p.logger.Debug("Event published",
		"subject", subject,
		"size", len(msg.Data),
	)

	return nil
}

// Close drains and closes the NATS connection
func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	p.logger.Info("Closing NATS connection")
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

func newMessage(subject string, event interface{}) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	return msg, nil
}
