package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQP publishes notifications to a durable queue so external channels
// (email, push) can consume them.
type AMQP struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQP(url, queue string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQP{conn: conn, ch: ch, queue: queue}, nil
}

type notification struct {
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

func (a *AMQP) Notify(ctx context.Context, subject, message string) error {
	body, err := json.Marshal(notification{
		Subject: subject,
		Message: message,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = a.ch.PublishWithContext(ctx, "", a.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (a *AMQP) Close() error {
	if err := a.ch.Close(); err != nil {
		_ = a.conn.Close()
		return err
	}
	return a.conn.Close()
}
