package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis"

	"github.com/Veraticus/lifeledger/internal/common"
)

// RedisOptions configures a Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	Prefix   string
	DB       int
	// Retry controls how hard the initial connection is attempted.
	Retry common.RetryOptions
}

// RedisStorage implements KV on a Redis server. Keys are namespaced by Prefix.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage connects to Redis and verifies the connection, retrying
// while the server is unreachable.
func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(opts.Addr, "addr"); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ping := func() error {
		return client.WithContext(ctx).Ping().Err()
	}
	if err := common.WithRetry(ctx, ping, opts.Retry); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	slog.Debug("connected to redis", "addr", opts.Addr, "db", opts.DB)
	return &RedisStorage{client: client, prefix: opts.Prefix}, nil
}

// Get returns the value stored under key.
func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	value, err := r.client.WithContext(ctx).Get(r.prefix + key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// SetMulti writes every entry with a single MSET, which Redis applies atomically.
func (r *RedisStorage) SetMulti(ctx context.Context, entries map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntries(entries); err != nil {
		return err
	}

	pairs := make([]interface{}, 0, len(entries)*2)
	for k, v := range entries {
		pairs = append(pairs, r.prefix+k, v)
	}
	if err := r.client.WithContext(ctx).MSet(pairs...).Err(); err != nil {
		return fmt.Errorf("failed to write %d keys: %w", len(entries), err)
	}
	return nil
}

// Close closes the client connection.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
