package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is durable key-value persistence for quiz progress. A single
// fixed key holds the whole snapshot — one quiz profile per device.
type Store interface {
	// LoadProgress returns the persisted progress snapshot, or
	// ErrNotFound if nothing has been saved yet.
	LoadProgress(ctx context.Context) ([]byte, error)

	// SaveProgress replaces the persisted snapshot.
	SaveProgress(ctx context.Context, data []byte) error

	Close() error
}
