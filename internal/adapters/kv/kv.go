// Package kv defines the durable key-value store interface and its Redis
// implementation. All site state (the profile collection, the background URL,
// and every active session) lives behind this interface.
package kv

import (
	"context"
	"errors"
	"time"
)

// Sentinel kinds for key-value store errors.
var (
	ErrNotFound = errors.New("key not found")
	ErrConnect  = errors.New("key-value store connect failed")
)

// IsNotFound reports whether err indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store provides string-keyed durable storage.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key with no expiry.
	Put(ctx context.Context, key, value string) error

	// PutTTL stores value under key and lets the store expire it after ttl.
	PutTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key and reports whether it existed. Deleting an absent
	// key is a no-op.
	Delete(ctx context.Context, key string) (bool, error)
}
