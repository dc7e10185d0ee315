package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invoicely/backend/internal/infrastructure/config"
)

const documentKeyPrefix = "invoicely:doc:"

// RedisDocumentCache stores rendered documents in Redis. This is
// suitable for deployments where multiple instances share the cache.
type RedisDocumentCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDocumentCache connects to Redis and verifies the connection
func NewRedisDocumentCache(cfg config.RedisConfig) (*RedisDocumentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDocumentCache{
		client:    client,
		keyPrefix: documentKeyPrefix,
	}, nil
}

// NewRedisDocumentCacheWithClient wraps an existing Redis client. This
// is useful for testing or when sharing a client across components.
func NewRedisDocumentCacheWithClient(client *redis.Client, keyPrefix string) *RedisDocumentCache {
	if keyPrefix == "" {
		keyPrefix = documentKeyPrefix
	}
	return &RedisDocumentCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached document for key, if present
func (c *RedisDocumentCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cached document: %w", err)
	}
	return value, true, nil
}

// Set stores a rendered document under key with a TTL
func (c *RedisDocumentCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (c *RedisDocumentCache) Close() error {
	return c.client.Close()
}
