package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abgdnv/gocart/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ messaging.Publisher = (*Publisher)(nil)

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends events to a topic exchange using the event subject as routing key.
type Publisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	timeout  time.Duration
}

// NewPublisher opens a channel on conn and declares the exchange.
func NewPublisher(conn *amqp.Connection, exchange string, timeout time.Duration) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return newPublisher(ch, exchange, timeout), nil
}

func newPublisher(ch channel, exchange string, timeout time.Duration) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, timeout: timeout}
}

func (p *Publisher) Publish(ctx context.Context, event messaging.Event) error {
	body, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(
		pubCtx,
		p.exchange,
		event.Subject(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}

// Close closes the underlying channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
