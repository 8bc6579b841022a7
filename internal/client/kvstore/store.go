// Package kvstore provides the durable key-value store the client cache is
// built on. Values are opaque byte slices; keys are plain strings.
//
// Three backends are available:
//   - SQLiteStore: a local database file, the default on a device;
//   - RedisStore: a Redis instance, handy for shared development setups;
//   - MemoryStore: process-local, used by tests and throwaway sessions.
//
// Every backend applies Set, SetMany and Delete atomically, so a reader never
// observes half of a SetMany.
package kvstore

import (
	"context"
	"fmt"
)

// Store is the key-value contract. Get returns (nil, nil) when the key is
// absent. Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	SQLitePath  string
	RedisURL    string
	RedisPrefix string
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
