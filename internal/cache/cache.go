// Package cache stores GraphQL responses keyed by operation and variables.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented response cache. Implementations fail safe: backend
// errors behave like misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	RedisAddr string
	RedisPass string
	RedisDB   int
	KeyPrefix string
}

// New builds the configured backend. An empty backend means memory; "none"
// yields a nil Cache, which callers treat as caching disabled.
func New(opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendNone:
		return nil, nil
	case BackendRedis:
		return NewRedis(opts.RedisAddr, opts.RedisPass, opts.RedisDB, opts.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
