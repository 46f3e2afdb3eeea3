// Package kv provides the durable key-value storage the workspace stores
// persist to. Values are opaque text, usually JSON documents.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Storage is a durable string key-value map. Writes are last-write-wins:
// concurrent writers sharing one backend silently overwrite each other.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}
