// Package store defines the key/value contract the tracker persists through
// and its SQLite, Redis, and in-memory backends.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Store is a flat key to record mapping. Put must replace the whole value
// atomically: a concurrent Get sees either the old record or the new one.
type Store interface {
	// Get returns the stored value and true, or nil and false when the key
	// has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put creates or replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Keys lists stored keys with the given prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("store key is required")
	}
	return key, nil
}
