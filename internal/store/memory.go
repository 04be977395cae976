package store

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/prop-edge/internal/models"
)

// MemoryStore is an in-process SnapshotStore for local runs and tests.
// Snapshots are stored as deep copies via JSON round-trip semantics at the
// model level: the stored value is a copied struct, so later mutation of
// the caller's snapshot does not leak into the cache.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates an in-memory snapshot store. A zero TTL keeps
// snapshots until overwritten.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Get retrieves the snapshot under key.
func (s *MemoryStore) Get(_ context.Context, key string) (*models.OddsSnapshot, error) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
	}
	snapshot, ok := value.(models.OddsSnapshot)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, key)
	}
	return &snapshot, nil
}

// Set stores a copy of the snapshot under key, replacing any prior value.
func (s *MemoryStore) Set(_ context.Context, key string, snapshot *models.OddsSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot for %s", ErrInvalidSnapshot, key)
	}
	copied := *snapshot
	copied.Players = make(map[string]models.Offer, len(snapshot.Players))
	for k, v := range snapshot.Players {
		copied.Players[k] = v
	}
	s.cache.SetDefault(key, copied)
	return nil
}

// Ping always succeeds for the in-process store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// ItemCount returns the number of cached snapshots.
func (s *MemoryStore) ItemCount() int {
	return s.cache.ItemCount()
}
