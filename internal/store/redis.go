package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/prop-edge/internal/models"
)

// RedisStore stores each snapshot as a single JSON string value.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed snapshot store. A zero TTL keeps
// snapshots until overwritten.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get retrieves and decodes the snapshot under key. redis.Nil maps to
// ErrSnapshotNotFound; any other failure wraps ErrStoreUnavailable.
func (s *RedisStore) Get(ctx context.Context, key string) (*models.OddsSnapshot, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrStoreUnavailable, key, err)
	}

	var snapshot models.OddsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, key, err)
	}
	return &snapshot, nil
}

// Set encodes and writes the snapshot as one atomic value replacement.
func (s *RedisStore) Set(ctx context.Context, key string, snapshot *models.OddsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, key, err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStoreUnavailable, key, err)
	}
	return nil
}

// Ping checks store connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
