// Package kv is the injectable key-value store behind the checklist.
// The engine only ever talks to the Store interface, so tests run against
// the in-memory implementation and the service against sqlite.
package kv

import "context"

// Store is a small durable string map with prefix enumeration.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	KeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
