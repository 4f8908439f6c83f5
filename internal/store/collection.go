package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

type lockKey struct {
	store Store
	key   string
}

// locks holds one mutex per (store, key) so every Collection bound to the
// same snapshot serializes its read-modify-write cycles.
var locks sync.Map

func lockFor(s Store, key string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(lockKey{store: s, key: key}, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Collection is a typed view over one persisted JSON array.
type Collection[T any] struct {
	store Store
	key   string
	mu    *sync.Mutex
}

func NewCollection[T any](s Store, prefix, name string) *Collection[T] {
	key := Key(prefix, name)
	return &Collection[T]{store: s, key: key, mu: lockFor(s, key)}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Read returns the decoded collection. An absent key yields an empty slice;
// undecodable data yields ErrCorrupt rather than silently resetting it.
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Write replaces the whole collection.
func (c *Collection[T]) Write(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, c.key, err)
	}
	return c.store.Set(ctx, c.key, data)
}

// Update runs fn over the current records and writes back what it returns.
// Nothing is written when fn fails.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.Read(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.Write(ctx, updated)
}

// Exists reports whether the collection has ever been written.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	if _, err := c.store.Get(ctx, c.key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
