// Package auditstream publishes audit events to a Redis stream.
package auditstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hamrobank/ledger/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Publisher appends audit events to a Redis stream for downstream consumers.
type Publisher struct {
	client *redis.Client
	stream string
}

// NewPublisher returns a Publisher writing to the given stream.
func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
	}
}

// Record appends the event to the stream.
func (p *Publisher) Record(ctx context.Context, event domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event": payload,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}

	return nil
}
