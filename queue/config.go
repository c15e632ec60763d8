package queue

// See https://www.rabbitmq.com/tutorials/amqp-concepts-tutorial.html

type ConnectionConfig struct {
	// URI: The RabbitMQ connection URI, which includes the address, port, and authentication credentials if necessary
	URI string `validate:"required,url"`
	// Exchange: declared on connect when set. Events are published to it.
	Exchange *ExchangeConfig
}

type ExchangeConfig struct {
	// Name: The name of the exchange.
	Name string `validate:"required"`
	// Kind: direct, fanout, topic or headers. Defaults to topic.
	Kind string
	// Durable: Whether the exchange survives a broker restart.
	Durable bool
}

type PublishConfig struct {
	// Exchange: The name of the exchange to be used for message publishing.
	Exchange string
	// RoutingKey: Used when a message does not carry its own.
	RoutingKey string
	// ContentType: The content type of the message to be published.
	// The default value is "application/json".
	ContentType string
	// DeliveryMode: The delivery mode of the message to be published.
	// 1 = non-persistent
	// 2 = persistent
	DeliveryMode uint8
}
