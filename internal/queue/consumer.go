package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type PasswordResetHandler func(ctx context.Context, event PasswordResetEvent) error

// ConsumePasswordResets keeps a consumer attached to the reset queue,
// reconnecting with exponential backoff until ctx is cancelled.
func ConsumePasswordResets(ctx context.Context, url string, log *zap.Logger, handle PasswordResetHandler) error {
	if url == "" {
		return ErrBrokerNotConfigured
	}
	if log == nil {
		log = zap.NewNop()
	}

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("reset consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, log, handle)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("reset consumer loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger, handle PasswordResetHandler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Warn("reset consumer set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(PasswordResetQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(PasswordResetQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleDelivery(ctx, d.Body, handle); err != nil {
				log.Error("reset consumer handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleDelivery decodes one message body and passes it to handle.
func HandleDelivery(ctx context.Context, body []byte, handle PasswordResetHandler) error {
	var event PasswordResetEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if event.Email == "" || event.ResetLink == "" {
		return errors.New("reset event missing email or link")
	}
	return handle(ctx, event)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
