package store

import "errors"

var (
	// ErrSnapshotNotFound indicates no snapshot exists under the key.
	// This is an expected state, not a failure.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStoreUnavailable indicates a store connectivity or configuration
	// failure. Fatal for the calling operation.
	ErrStoreUnavailable = errors.New("snapshot store unavailable")

	// ErrInvalidSnapshot indicates a stored blob could not be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot payload")
)
