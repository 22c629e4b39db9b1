package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrBrokerNotConfigured = errors.New("rabbitmq url is not configured")

// Publisher sends events to RabbitMQ. Each publish dials its own connection.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, log: log}
}

func (p *Publisher) PublishPasswordReset(ctx context.Context, event PasswordResetEvent) error {
	return p.publish(ctx, PasswordResetQueue, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	if p.url == "" {
		return ErrBrokerNotConfigured
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		p.log.Warn("rabbitmq publish failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	return nil
}

// LogNotifier stands in for the broker in development. It writes the reset
// link at debug level so the flow can be exercised without RabbitMQ.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) PublishPasswordReset(_ context.Context, event PasswordResetEvent) error {
	n.log.Debug("password reset requested",
		zap.Int64("user_id", event.UserID),
		zap.String("email", event.Email),
		zap.String("reset_link", event.ResetLink),
		zap.String("expires_at", event.ExpiresAt),
	)
	return nil
}
