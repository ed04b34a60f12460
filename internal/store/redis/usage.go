package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementUsage bumps the counter of a generation outcome ("ok", "not_found", ...)
func (s *Store) IncrementUsage(ctx context.Context, outcome string) error {
	if err := s.client.HIncrBy(ctx, UsageKey(), outcome, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats returns all outcome counters
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, UsageKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for outcome, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats[outcome] = n
	}

	return stats, nil
}
