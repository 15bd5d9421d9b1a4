package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps a redis client but fails safe by swallowing connectivity errors.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed cache. Keys are stored under prefix.
func NewRedis(addr, password string, db int, prefix string) *Redis {
	if prefix == "" {
		prefix = "usergrid:"
	}
	return NewRedisFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), prefix)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get returns the value, or a miss if it is absent or redis is unavailable.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if r == nil || r.client == nil {
		return nil, false
	}
	res, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return res, true
}

// Set stores value with ttl, ignoring redis errors.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if r == nil || r.client == nil {
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	_ = r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (r *Redis) Delete(ctx context.Context, key string) {
	if r == nil || r.client == nil {
		return
	}
	_ = r.client.Del(ctx, r.prefix+key).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
