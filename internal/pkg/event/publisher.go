package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	SessionEnded    = "session.ended"
	QuizCompleted   = "quiz.completed"
	StudentApproved = "student.approved"
	StudentRejected = "student.rejected"
)

type Envelope struct {
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

type (
	Publisher interface {
		Publish(ctx context.Context, eventType string, payload any) error
		Close()
	}

	amqpPublisher struct {
		conn     *amqp.Connection
		channel  *amqp.Channel
		exchange string
		log      *logrus.Logger
		mu       sync.Mutex
	}

	noopPublisher struct {
		log *logrus.Logger
	}
)

// NewPublisher connects to RabbitMQ and declares a topic exchange. An empty
// URL yields a publisher that only logs.
func NewPublisher(url, exchange string, log *logrus.Logger) (Publisher, error) {
	if url == "" {
		return &noopPublisher{log: log}, nil
	}
	if exchange == "" {
		exchange = "tutorly.events"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &amqpPublisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := encode(eventType, payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The event type doubles as the routing key.
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	p.log.WithField("event", eventType).Debug("Event published")
	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *noopPublisher) Publish(_ context.Context, eventType string, payload any) error {
	if _, err := encode(eventType, payload); err != nil {
		return err
	}
	p.log.WithField("event", eventType).Debug("Event publishing disabled, dropping event")
	return nil
}

func (p *noopPublisher) Close() {}

func encode(eventType string, payload any) ([]byte, error) {
	body, err := json.Marshal(Envelope{Type: eventType, Payload: payload, OccurredAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}
	return body, nil
}
