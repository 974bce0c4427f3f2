package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"scribe/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const amqpExchangeKind = "topic"

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// amqpPublisher publishes events to a durable topic exchange. The routing key is the event type.
type amqpPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	logger   *slog.Logger
}

func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq: dial failed")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "rabbitmq: channel open failed")
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqpExchangeKind,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Wrapf(err, "rabbitmq: declare exchange %s", exchange)
	}

	logger.Info("RabbitMQ publisher initialized", slog.String("exchange", exchange))

	return newAMQPPublisher(conn, ch, exchange, logger), nil
}

func newAMQPPublisher(conn *amqp.Connection, ch amqpChannel, exchange string, logger *slog.Logger) *amqpPublisher {
	return &amqpPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}
}

func (p *amqpPublisher) Publish(ctx context.Context, event *service.ContentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{}
	for k, v := range eventAttributes(event) {
		headers[k] = v
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.ID,
		CorrelationId: event.RequestID,
		Timestamp:     event.OccurredAt.UTC(),
		Type:          event.Type,
		Headers:       headers,
		Body:          body,
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg); err != nil {
		return errors.Wrap(err, "rabbitmq: publish failed")
	}

	return nil
}

func (p *amqpPublisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = errors.WithStack(err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = errors.WithStack(err)
		}
	}

	return firstErr
}
