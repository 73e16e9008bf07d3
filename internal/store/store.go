package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// BlobStore keeps whole serialized values under fixed keys. Values are
// replaced wholesale on Put; there is no partial update.
type BlobStore interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	Close() error
}
