package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher defines the interface for publishing domain events.
type Publisher interface {
	// Publish sends an event keyed by its kind name.
	// Returns the message ID assigned by the broker.
	Publish(ctx context.Context, kind string, event DomainEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewPublisher creates a new Publisher backed by Redis Streams.
func NewPublisher(client *redis.Client) Publisher {
	return &RedisPublisher{client: client}
}

// Publish adds the event to the post-events stream using XADD.
// "*" lets Redis assign the message ID (timestamp-sequence).
func (p *RedisPublisher) Publish(ctx context.Context, kind string, event DomainEvent) (string, error) {
	startTime := time.Now()

	env, err := NewEnvelope(event)
	if err != nil {
		log.Printf("[Publisher] Publish FAILED: kind=%s err=%v", kind, err)
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamPostEvents,
		Values: env.ToMap(),
	}).Result()
	if err != nil {
		log.Printf("[Publisher] Publish FAILED: kind=%s err=%v", kind, err)
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	log.Printf("[Publisher] Publish OK: kind=%s eventID=%s msgID=%s duration=%v",
		kind, env.EventID, messageID, time.Since(startTime))

	return messageID, nil
}
