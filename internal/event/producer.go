package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"
)

// UserProducer publishes user lifecycle events to the user events topic
type UserProducer struct {
	client   pulsar.Client
	producer pulsar.Producer
	topic    string
	logger   Logger
}

// NewUserProducer creates a new user event producer
func NewUserProducer(client pulsar.Client, topic string, logger Logger) (*UserProducer, error) {
	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic:                   topic,
		SendTimeout:             30 * time.Second,
		MaxPendingMessages:      100,
		DisableBatching:         false,
		BatchingMaxPublishDelay: 10 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &UserProducer{
		client:   client,
		producer: producer,
		topic:    topic,
		logger:   logger,
	}, nil
}

// PublishUserEvent publishes a user lifecycle event
func (p *UserProducer) PublishUserEvent(ctx context.Context, eventType string, userID uuid.UUID, payload map[string]interface{}) error {
	userEvent := UserEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(userEvent)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &pulsar.ProducerMessage{
		Payload: body,
		Key:     userID.String(),
		Properties: map[string]string{
			"event_type": eventType,
			"user_id":    userID.String(),
		},
		EventTime: userEvent.OccurredAt,
	}

	if _, err := p.producer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.LogInfo("Published user event", map[string]interface{}{
		"event_id":   userEvent.ID,
		"event_type": eventType,
		"user_id":    userID,
	})

	return nil
}

// Close closes the producer and releases resources
func (p *UserProducer) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}
