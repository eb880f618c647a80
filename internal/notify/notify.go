package notify

//go:generate mockgen -destination=mock_notify/publisher_mock.go -package=mock_notify github.com/tawseel-next/internal/notify Publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventOrderStatusChanged   = "order.status_changed"
	EventDelegateSheetCreated = "delegate_sheet.created"

	defaultExchange = "order_events_fanout"
	publishTimeout  = 5 * time.Second
)

// Event message published to downstream consumers
type Event struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"order_id,omitempty"`
	Barcode     string    `json:"barcode,omitempty"`
	FromStatus  string    `json:"from_status,omitempty"`
	ToStatus    string    `json:"to_status,omitempty"`
	DriverID    *uint     `json:"driver_id,omitempty"`
	SheetID     uint      `json:"sheet_id,omitempty"`
	TotalAmount string    `json:"total_amount,omitempty"`
	OrderCount  int       `json:"order_count,omitempty"`
	ActorID     uint      `json:"actor_id,omitempty"`
	Source      string    `json:"source,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher fans events out to subscribers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New AMQP publisher when enabled, otherwise a log-only publisher
func New(cfg *config.NotifyConfig) (Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return LogPublisher{}, nil
	}
	return DialAMQP(cfg.URL, cfg.Exchange)
}

// LogPublisher writes events to the application log
type LogPublisher struct{}

// Publish logs the event
func (LogPublisher) Publish(_ context.Context, event Event) error {
	logger.Infow("notify_event",
		"type", event.Type,
		"order_id", event.OrderID,
		"sheet_id", event.SheetID,
		"to_status", event.ToStatus,
	)
	return nil
}

// Close no-op
func (LogPublisher) Close() error { return nil }

// AMQPPublisher publishes JSON events to a fanout exchange
type AMQPPublisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQP connects and declares the exchange
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	exchange = strings.TrimSpace(exchange)
	if exchange == "" {
		exchange = defaultExchange
	}
	p := &AMQPPublisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	p.conn = conn
	p.ch = ch
	return nil
}

// Publish sends one persistent JSON message, reconnecting once if the connection dropped
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the channel and connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}
