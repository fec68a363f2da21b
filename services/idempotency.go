package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const webhookEventKeyPrefix = "webhook:event:"

// IdempotencyStore records processed payment events so that a redelivered
// event does not materialize a second order.
type IdempotencyStore interface {
	// MarkProcessed records the event id and reports whether this delivery
	// is the first one seen.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	// Release forgets the event id so the provider's retry can succeed
	// after a downstream failure.
	Release(ctx context.Context, eventID string) error
}

type redisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) IdempotencyStore {
	return &redisIdempotencyStore{client: client, ttl: ttl}
}

func (s *redisIdempotencyStore) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.client.SetNX(ctx, webhookEventKeyPrefix+eventID, 1, s.ttl).Result()
}

func (s *redisIdempotencyStore) Release(ctx context.Context, eventID string) error {
	return s.client.Del(ctx, webhookEventKeyPrefix+eventID).Err()
}
