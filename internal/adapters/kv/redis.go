package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

const connectTimeout = 2 * time.Second

// RedisStore implements Store on top of a Redis client.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the value stored under key, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		metrics.RecordKVOperation("get", "miss", latencyMs(start))
		return "", ErrNotFound
	}
	if err != nil {
		metrics.RecordKVOperation("get", "error", latencyMs(start))
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	metrics.RecordKVOperation("get", "ok", latencyMs(start))
	return val, nil
}

// Put stores value under key with no expiry.
func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	return s.put(ctx, key, value, 0)
}

// PutTTL stores value under key with a store-enforced expiry.
func (s *RedisStore) PutTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.put(ctx, key, value, ttl)
}

func (s *RedisStore) put(ctx context.Context, key, value string, ttl time.Duration) error {
	start := time.Now()
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.RecordKVOperation("put", "error", latencyMs(start))
		return fmt.Errorf("kv put %q: %w", key, err)
	}
	metrics.RecordKVOperation("put", "ok", latencyMs(start))
	return nil
}

// Delete removes key and reports whether it existed. Absent keys are not an
// error.
func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	removed, err := s.client.Del(ctx, key).Result()
	if err != nil {
		metrics.RecordKVOperation("delete", "error", latencyMs(start))
		return false, fmt.Errorf("kv delete %q: %w", key, err)
	}
	metrics.RecordKVOperation("delete", "ok", latencyMs(start))
	return removed > 0, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func latencyMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1e3
}
