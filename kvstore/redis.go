package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis storage.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "agency:".
	Prefix string
	// Timeout bounds each call, 5s if zero.
	Timeout time.Duration
}

// Redis stores values as plain Redis strings.
type Redis struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// OpenRedis connects to a Redis server and checks it answers.
func OpenRedis(opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	r := NewRedis(client, opts.Prefix, opts.Timeout)

	ctx, cancel := r.context()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %q: %w", opts.Addr, err)
	}
	return r, nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string, timeout time.Duration) *Redis {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Redis{client: client, prefix: prefix, timeout: timeout}
}

func (r *Redis) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Key returns the Redis key used for key.
func (r *Redis) Key(key string) string { return r.prefix + key }

// Close closes the client.
func (r *Redis) Close() error { return r.client.Close() }

// Get returns the value of key.
func (r *Redis) Get(key string) ([]byte, error) {
	ctx, cancel := r.context()
	defer cancel()
	value, err := r.client.Get(ctx, r.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %q: %w", r.Key(key), fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", r.Key(key), err)
	}
	return value, nil
}

// Set stores value under key, without expiration.
func (r *Redis) Set(key string, value []byte) error {
	ctx, cancel := r.context()
	defer cancel()
	if err := r.client.Set(ctx, r.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", r.Key(key), err)
	}
	return nil
}
