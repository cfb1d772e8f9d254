package rabbit

import (
	"fmt"

	"go.uber.org/zap"
)

// QueueName derives the durable queue bound to a routing topic.
func QueueName(topic string) string {
	return topic + ".q"
}

// DeclareTopology declares the topic exchange and one durable queue per
// topic, each bound under its own routing key. Declarations are idempotent,
// so every service calls this on startup and the first one wins.
func (c *Client) DeclareTopology(exchange string, topics []string) error {
	if err := c.Ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	for _, topic := range topics {
		queue := QueueName(topic)
		if _, err := c.Ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := c.Ch.QueueBind(queue, topic, exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", queue, topic, err)
		}
		c.Log.Debug("declared queue binding",
			zap.String("queue", queue),
			zap.String("routing_key", topic),
			zap.String("exchange", exchange),
		)
	}
	return nil
}
