// Package store persists the marketplace collections as whole JSON
// snapshots under string keys, the layout the service has always used.
package store

import (
	"context"
	"errors"
	"fmt"
)

const (
	CollectionUsers     = "users"
	CollectionProviders = "providers"
	CollectionBookings  = "bookings"
	CollectionContacts  = "contacts"

	SessionKey = "session"
)

var (
	ErrNotFound = errors.New("key not found")
	// ErrStorage wraps every backend failure surfaced to callers.
	ErrStorage = errors.New("storage error")
	ErrCorrupt = fmt.Errorf("%w: corrupted collection data", ErrStorage)
)

// Store is a synchronous key-value medium. Writes are visible to the next
// read; there is no write buffering.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a collection or session entry.
func Key(prefix, name string) string {
	return prefix + name
}
