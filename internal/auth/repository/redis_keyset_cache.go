// Package repository implements storage for the auth module.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keySetCacheKeyPrefix = "coffee-shop:jwks:"

// RedisKeySetCache shares fetched key set documents between replicas.
type RedisKeySetCache struct {
	redis *redis.Client
	key   string
}

// NewRedisKeySetCache creates a cache storing the document published at jwksURL.
func NewRedisKeySetCache(redisClient *redis.Client, jwksURL string) *RedisKeySetCache {
	sum := sha256.Sum256([]byte(jwksURL))
	return &RedisKeySetCache{
		redis: redisClient,
		key:   keySetCacheKeyPrefix + hex.EncodeToString(sum[:8]),
	}
}

// Get returns the cached document. found is false when nothing is cached or the entry expired.
func (c *RedisKeySetCache) Get(ctx context.Context) ([]byte, bool, error) {
	document, err := c.redis.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key set from redis: %w", err)
	}
	return document, true, nil
}

// Set stores the document for ttl.
func (c *RedisKeySetCache) Set(ctx context.Context, document []byte, ttl time.Duration) error {
	if err := c.redis.Set(ctx, c.key, document, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store key set in redis: %w", err)
	}
	return nil
}
