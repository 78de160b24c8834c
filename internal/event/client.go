package event

import (
	"fmt"

	"github.com/apache/pulsar-client-go/pulsar"

	"github.com/atriumlabs/atrium/backend/internal/config"
)

// NewClient creates a new Pulsar client from configuration
func NewClient(cfg *config.PulsarConfig) (pulsar.Client, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL:               cfg.URL,
		OperationTimeout:  cfg.OperationTimeout,
		ConnectionTimeout: cfg.ConnectionTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pulsar client: %w", err)
	}
	return client, nil
}
