// Package rabbit wraps the amqp091 connection and channel handling shared
// by the outbox publisher and the processor.
package rabbit

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Client struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
	Log  *zap.Logger
}

func NewClient(url string, log *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{Conn: conn, Ch: ch, Log: log}, nil
}

func (c *Client) Close() {
	if err := c.Ch.Close(); err != nil {
		c.Log.Warn("failed to close channel", zap.Error(err))
	}
	if err := c.Conn.Close(); err != nil {
		c.Log.Warn("failed to close connection", zap.Error(err))
	}
}

// Publish sends one persistent JSON message. Brokers drop non-persistent
// messages on restart, and every topic in this pipeline needs replay safety.
func (c *Client) Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error {
	return c.Ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
		Body:         body,
	})
}

// Consume opens a manual-ack delivery stream with the given prefetch window.
func (c *Client) Consume(queue, consumerTag string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.Ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := c.Ch.Consume(queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	return deliveries, nil
}
