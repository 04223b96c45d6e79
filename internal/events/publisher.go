// Package events publishes import lifecycle events to Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
)

// StreamName is the Redis stream import events are appended to.
const StreamName = "gotools:import-events"

// EventImportCompleted is emitted after every ingestion run, successful
// or partially failed.
const EventImportCompleted = "import.completed"

// ImportEvent is the wire shape appended to the stream.
type ImportEvent struct {
	EventID   uuid.UUID             `json:"event_id"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	Summary   *models.ImportSummary `json:"summary"`
}

// Publisher publishes import events to Redis Streams. A nil Publisher is
// a safe no-op, so event publishing stays optional.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates an event publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// PublishImportCompleted appends one import.completed event to the stream.
func (p *Publisher) PublishImportCompleted(ctx context.Context, summary *models.ImportSummary) error {
	if p == nil || p.client == nil {
		return nil
	}

	event := ImportEvent{
		EventID:   uuid.New(),
		EventType: EventImportCompleted,
		Timestamp: time.Now().UTC(),
		Summary:   summary,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published import event",
			logger.String("event_type", event.EventType),
			logger.String("source", summary.Source),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}
