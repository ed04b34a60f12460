package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPayloadTTL is used when the store is built with a non-positive TTL
const DefaultPayloadTTL = 6 * time.Hour

// Store handles Redis operations for the payload cache and usage counters
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultPayloadTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// TTL returns the expiry applied to cached payloads.
func (s *Store) TTL() time.Duration { return s.ttl }
