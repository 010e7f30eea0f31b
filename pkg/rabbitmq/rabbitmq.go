package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"swiftstock/internal/models"

	amqp "github.com/streadway/amqp"
)

// InventoryQueue is the durable queue inventory events are published to.
const InventoryQueue = "inventory_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// inventory queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected and %s declared.", InventoryQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		InventoryQueue, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", InventoryQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeEvent builds the message published for event.
func EncodeEvent(event models.InventoryEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal inventory event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.RoutingKey(),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}

// PublishInventoryEvent publishes event to the inventory queue.
func (c *Client) PublishInventoryEvent(event models.InventoryEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		"",             // default exchange
		InventoryQueue, // routing key: the queue name
		false,          // mandatory
		false,          // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent %s event for ID %d", event.RoutingKey(), event.ID)
	return nil
}

// ErrStopConsuming tells ConsumeInventoryEvents to requeue the current
// message and return. Wrap it when the handler cannot make progress on any
// message, e.g. because its output is gone.
var ErrStopConsuming = errors.New("stop consuming")

// ConsumeInventoryEvents delivers every inventory event to handler until the
// channel closes or handler returns ErrStopConsuming. Messages are acked when
// handler returns nil and requeued otherwise; messages that cannot be decoded
// are dropped.
func (c *Client) ConsumeInventoryEvents(handler func(models.InventoryEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	return handleDeliveries(msgs, handler)
}

func handleDeliveries(msgs <-chan amqp.Delivery, handler func(models.InventoryEvent) error) error {
	for msg := range msgs {
		var event models.InventoryEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("Dropping undecodable message %d: %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, false); nackErr != nil {
				log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
			}
			continue
		}
		if err := handler(event); err != nil {
			log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, true); nackErr != nil {
				log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
			}
			if errors.Is(err, ErrStopConsuming) {
				return err
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
		}
	}
	return nil
}
