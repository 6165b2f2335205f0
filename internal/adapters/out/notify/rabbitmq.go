package notify

import (
	"context"
	"fmt"

	"couriertracking/internal/core/application/tracking"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp.Channel the observer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQObserver publishes entrances to a fanout exchange.
type RabbitMQObserver struct {
	publisher Publisher
	exchange  string
}

// NewRabbitMQObserver opens a channel on conn and declares a durable fanout exchange.
// The returned close function releases the channel.
func NewRabbitMQObserver(conn *amqp.Connection, exchange string) (*RabbitMQObserver, func() error, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	return NewRabbitMQPublisherObserver(ch, exchange), ch.Close, nil
}

// NewRabbitMQPublisherObserver creates an observer over an existing publisher.
func NewRabbitMQPublisherObserver(publisher Publisher, exchange string) *RabbitMQObserver {
	return &RabbitMQObserver{publisher: publisher, exchange: exchange}
}

// OnStoreEntrance publishes the event as a persistent JSON message.
func (o *RabbitMQObserver) OnStoreEntrance(ctx context.Context, event tracking.StoreEntranceEvent) error {
	body, err := encode(event)
	if err != nil {
		return fmt.Errorf("marshal entrance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = o.publisher.PublishWithContext(ctx, o.exchange, event.CourierID, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         "store.entrance",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish entrance: %w", err)
	}
	return nil
}
