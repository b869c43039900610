package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/marketcart/internal/port"
)

const (
	pingAttempts   = 30
	pingTimeout    = 5 * time.Second
	maxPingBackoff = 30 * time.Second
)

type redisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) port.KeyValueStore {
	return &redisKV{client: client}
}

// NewRedisClient accepts either a redis:// URL or a bare host:port.
func NewRedisClient(addr string) *redis.Client {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			PoolTimeout:  4 * time.Second,
			IdleTimeout:  3 * time.Minute,
		}
	}

	return redis.NewClient(opts)
}

// WaitReady pings the server with exponential backoff until it answers,
// the attempts run out or ctx is done.
func WaitReady(ctx context.Context, client *redis.Client) error {
	var lastErr error

	for i := 0; i < pingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			return nil
		}

		backoff := time.Duration(100*(1<<uint(i))) * time.Millisecond
		if backoff > maxPingBackoff {
			backoff = maxPingBackoff
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("redis not ready after %d attempts: %w", pingAttempts, lastErr)
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}
