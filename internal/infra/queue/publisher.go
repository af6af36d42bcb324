package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

// Channel is the subset of *amqp.Channel used to publish.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends change events to a durable queue on the default exchange.
type Publisher struct {
	ch    Channel
	queue string
	close func() error
}

// Dial connects to url and declares queue.
func Dial(url, queue string) (*Publisher, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	p := NewPublisher(ch, queue)
	p.close = func() error {
		return errors.Join(ch.Close(), conn.Close())
	}
	return p, nil
}

func NewPublisher(ch Channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

func (p *Publisher) Notify(ctx context.Context, ev model.ChangeEvent) error {
	body, err := sonic.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Kind + "." + ev.Op,
		Timestamp:    ev.UpdatedAt,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
