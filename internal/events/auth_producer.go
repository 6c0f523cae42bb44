package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Publisher interface {
	Publish(ctx context.Context, event *AuthEvent) error
}

// NopPublisher drops events. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event *AuthEvent) error {
	return nil
}

type AuthProducer struct {
	client     *redis.Client
	streamName string
	maxLen     int64
}

func NewAuthProducer(client *redis.Client, streamName string) *AuthProducer {
	return &AuthProducer{
		client:     client,
		streamName: streamName,
		maxLen:     100000,
	}
}

func (p *AuthProducer) Publish(ctx context.Context, event *AuthEvent) error {
	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName,
		MaxLen: p.maxLen,
		Approx: true,
		Values: event.Fields(),
	})

	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish auth event: %w", err)
	}

	return nil
}
