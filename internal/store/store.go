// Package store provides the key-value persistence backends for the wizard document.
//
// Every backend stores exactly one serialized document blob under one fixed key.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey is the storage key the document blob lives under.
const DefaultKey = "resuexpressData"

// ErrNotFound is returned by Load when no blob has been persisted yet.
var ErrNotFound = errors.New("no persisted document")

// Store is the persistence adapter: get/set of a single serialized blob.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

// Supported backends.
const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	Key         string
	Path        string // file and sqlite
	DatabaseURL string // postgres
	RedisURL    string // redis
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Path)
	case BackendSQLite:
		return NewSQLite(opts.Path, key)
	case BackendPostgres:
		return NewPostgres(ctx, opts.DatabaseURL, key)
	case BackendRedis:
		return NewRedisFromURL(opts.RedisURL, key)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
