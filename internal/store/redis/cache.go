package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Get returns a cached provider body. A miss is (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, PayloadKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, fmt.Errorf("failed to get cached payload: %w", err)
	}
	return data, true, nil
}

// Set stores a provider body with the store TTL
func (s *Store) Set(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, PayloadKey(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache payload: %w", err)
	}
	return nil
}

// Invalidate removes cached payloads and returns how many existed.
func (s *Store) Invalidate(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = PayloadKey(k)
	}
	n, err := s.client.Del(ctx, full...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return int(n), nil
}

// FlushCache removes all cached payloads and returns how many keys were deleted
func (s *Store) FlushCache(ctx context.Context) (int, error) {
	deleted := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixPayload+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete cache key: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to flush cache: %w", err)
	}
	return deleted, nil
}
