package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// Dispatcher forwards computed emergency routes to ambulance dispatch.
type Dispatcher interface {
	PublishEmergencyRoute(ctx context.Context, msg models.EmergencyDispatch) error
	Close()
}

type DispatchPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewDispatchPublisher(amqpURL, queueName string) (*DispatchPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &DispatchPublisher{conn: conn, channel: ch, queue: queueName}, nil
}

func (p *DispatchPublisher) PublishEmergencyRoute(ctx context.Context, msg models.EmergencyDispatch) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    msg.RequestID,
			Timestamp:    msg.IssuedAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish emergency route: %w", err)
	}

	log.Printf("[RabbitMQ] Emergency route %s -> %s published to '%s' (%d bytes)", msg.Start, msg.End, p.queue, len(body))
	return nil
}

func (p *DispatchPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopDispatcher is used when no broker is configured.
type NopDispatcher struct{}

func (NopDispatcher) PublishEmergencyRoute(context.Context, models.EmergencyDispatch) error {
	return nil
}

func (NopDispatcher) Close() {}
