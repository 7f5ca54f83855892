package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores values in Redis under a key prefix
type RedisKV struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr    string
	Prefix  string
	Timeout time.Duration
}

// DefaultRedisConfig returns the default Redis configuration
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:    "localhost:6379",
		Prefix:  "taskdash:",
		Timeout: 3 * time.Second,
	}
}

// OpenRedis connects to Redis and checks the connection
func OpenRedis(cfg RedisConfig) (*RedisKV, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRedisConfig().Timeout
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not reach redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisKV(client, cfg.Prefix, cfg.Timeout), nil
}

// NewRedisKV wraps an existing client
func NewRedisKV(client *redis.Client, prefix string, timeout time.Duration) *RedisKV {
	return &RedisKV{client: client, prefix: prefix, timeout: timeout}
}

func (k *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	val, err := k.client.Get(ctx, k.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("could not get %q: %w", key, err)
	}
	return val, true, nil
}

func (k *RedisKV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	if err := k.client.Set(ctx, k.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("could not set %q: %w", key, err)
	}
	return nil
}

func (k *RedisKV) Close() error {
	return k.client.Close()
}
