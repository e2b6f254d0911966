// Package store provides the persistent key-value slot that holds cart snapshots.
package store

import (
	"context"
)

// SnapshotStore is an interface for cart snapshot storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type SnapshotStore interface {
	// Load returns the snapshot stored under key.
	// Returns ErrSnapshotNotFound if nothing is stored under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the snapshot stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the snapshot stored under key.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
