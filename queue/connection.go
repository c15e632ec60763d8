package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection dials the broker, opens a channel and declares the
// configured exchange.
func NewConnection(config ConnectionConfig) (*Connection, error) {
	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if ex := config.Exchange; ex != nil {
		kind := ex.Kind
		if kind == "" {
			kind = amqp.ExchangeTopic
		}
		if err := ch.ExchangeDeclare(ex.Name, kind, ex.Durable, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", ex.Name, err)
		}
	}

	return &Connection{conn, ch}, nil
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
