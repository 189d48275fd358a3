package securityevents

import (
	"context"
	"encoding/json"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/events"
	"resetme/internal/core/domain/logging"
	"resetme/internal/rabbitmq"

	"github.com/rabbitmq/amqp091-go"
)

const (
	routingKeyResetRequested = "password_reset.requested"
	routingKeyResetCompleted = "password_reset.completed"
)

// RabbitMQ publishes password reset audit events. Consumers (fraud
// detection, audit log) bind their own queues to the exchange.
type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (p *RabbitMQ) PublishResetRequested(ctx context.Context, event events.PasswordResetRequested) error {
	return p.publish(ctx, routingKeyResetRequested, event)
}

func (p *RabbitMQ) PublishResetCompleted(ctx context.Context, event events.PasswordResetCompleted) error {
	return p.publish(ctx, routingKeyResetCompleted, event)
}

func (p *RabbitMQ) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Error(ctx, "Could not publish AMQP message.", logging.Entry("err", err))
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", routingKey),
	)
	return nil
}
