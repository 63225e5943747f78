package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// AMQPPublisher publishes events to a durable RabbitMQ queue. Each publish
// opens its own connection; transient failures are retried with a capped
// exponential backoff.
type AMQPPublisher struct {
	url         string
	queue       string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration

	publish func(ctx context.Context, body []byte) error
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	p := &AMQPPublisher{
		url:         url,
		queue:       BookingConfirmedQueue,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
	p.publish = p.publishOnce
	return p
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	maxAttempts := p.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = p.publish(ctx, body)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
		if attempt < maxAttempts {
			if waitErr := p.waitRetry(ctx, attempt); waitErr != nil {
				return waitErr
			}
		}
	}
	return fmt.Errorf("publish %s after %d attempts: %w", p.queue, maxAttempts, lastErr)
}

func (p *AMQPPublisher) publishOnce(ctx context.Context, body []byte) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) waitRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(p.retryDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *AMQPPublisher) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := p.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	limit := p.retryCap
	if limit <= 0 {
		limit = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	if delay > limit {
		return limit
	}
	return delay
}
