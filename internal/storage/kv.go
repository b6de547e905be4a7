// Package storage provides the persistent key-value backing store the state
// stores hydrate from. Each store owns exactly one key and persists its whole
// record as a JSON string under it.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
