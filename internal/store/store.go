// Package store provides the snapshot cache of externally-sourced odds.
// One JSON blob per logical key; writes are whole-value replacements, so
// concurrent readers observe either the old or the new complete snapshot.
package store

import (
	"context"

	"github.com/yourusername/prop-edge/internal/models"
)

// SnapshotStore is the key-value cache boundary. A missing key is a normal
// state and surfaces as ErrSnapshotNotFound; a connectivity failure wraps
// ErrStoreUnavailable and must never be treated as a miss.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (*models.OddsSnapshot, error)
	Set(ctx context.Context, key string, snapshot *models.OddsSnapshot) error
	Ping(ctx context.Context) error
}
