package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/octabyte/bm-gateway/otel"
)

// Channel is the part of *amqp.Channel a publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher interface {
	// Publish sends body with routingKey, or the configured key when empty.
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

type publisher struct {
	ch     Channel
	config PublishConfig
}

func NewPublisher(ch Channel, config PublishConfig) Publisher {
	if config.ContentType == "" {
		config.ContentType = "application/json"
	}
	return &publisher{ch, config}
}

// Publish publishes a message to the configured exchange, carrying the
// trace context of ctx in the message headers.
func (p *publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	if routingKey == "" {
		routingKey = p.config.RoutingKey
	}

	headers := amqp.Table{}
	for k, v := range otel.InjectTraceHeaders(ctx, nil) {
		headers[k] = v
	}

	message := amqp.Publishing{
		Headers:      headers,
		ContentType:  p.config.ContentType,
		Body:         body,
		DeliveryMode: p.config.DeliveryMode,
	}

	return p.ch.PublishWithContext(
		ctx,
		p.config.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		message,
	)
}

func (p *publisher) Close() error {
	return p.ch.Close()
}
