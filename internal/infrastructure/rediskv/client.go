package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vitalsign-api/internal/config"
	"github.com/vitalsign-api/internal/domain"
)

// Client is a thin wrapper over the shared Redis key-value store. It holds no
// business logic: absence maps to domain.ErrNotFound, transport failures to
// domain.ErrUnavailable, and no retries happen here.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to the Redis instance described by cfg.
func NewClient(cfg *config.Config) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})}
}

// NewClientFromRedis wraps an existing Redis client. Used by tests to point
// the wrapper at miniredis.
func NewClientFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Get fetches the value stored under key. A missing key returns
// domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("kv get: %w: %v", domain.ErrUnavailable, err)
	}
	return v, nil
}

// Set writes value under key. A zero ttl stores the key without expiry.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kv set: %w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// CompareAndDelete deletes key only if its current value equals expected
// byte-for-byte, using WATCH/MULTI so concurrent consumers settle to at most
// one winner. Returns true when this call performed the delete; false when
// the key was already gone or its value changed underneath us.
func (c *Client) CompareAndDelete(ctx context.Context, key, expected string) (bool, error) {
	const maxRetries = 4

	for i := 0; i < maxRetries; i++ {
		deleted := false
		err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				return nil
			}
			if err != nil {
				return err
			}
			if current != expected {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			if err == nil {
				deleted = true
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue // key changed mid-transaction, re-check
		}
		if err != nil {
			return false, fmt.Errorf("kv compare-and-delete: %w: %v", domain.ErrUnavailable, err)
		}
		return deleted, nil
	}
	return false, nil
}
