package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apache/pulsar-client-go/pulsar"
)

// AuditConsumer consumes user events and writes them to the audit log.
type AuditConsumer struct {
	consumer pulsar.Consumer
	logger   Logger
}

// NewAuditConsumer creates a consumer on the user events topic
func NewAuditConsumer(client pulsar.Client, topic, subscription string, logger Logger) (*AuditConsumer, error) {
	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:            topic,
		SubscriptionName: subscription,
		Type:             pulsar.Shared,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return &AuditConsumer{
		consumer: consumer,
		logger:   logger,
	}, nil
}

// Start consumes events until the context is canceled.
func (c *AuditConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.consumer.Receive(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.LogError(err, "Failed to receive event")
				continue
			}

			var userEvent UserEvent
			if err := json.Unmarshal(msg.Payload(), &userEvent); err != nil {
				c.logger.LogWarn("Discarding malformed event", map[string]interface{}{
					"message_id": msg.ID().String(),
					"error":      err.Error(),
				})
				c.consumer.Ack(msg)
				continue
			}

			c.logger.LogInfo("User event received", map[string]interface{}{
				"event_id":    userEvent.ID,
				"event_type":  userEvent.Type,
				"user_id":     userEvent.UserID,
				"occurred_at": userEvent.OccurredAt,
			})
			c.consumer.Ack(msg)
		}
	}()
}

// Close closes the consumer and releases resources
func (c *AuditConsumer) Close() error {
	if c.consumer != nil {
		c.consumer.Close()
	}
	return nil
}
