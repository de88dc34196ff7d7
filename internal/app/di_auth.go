package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	authRepository "github.com/t-lanigan/coffee-shop/internal/auth/repository"
	authService "github.com/t-lanigan/coffee-shop/internal/auth/service"
	"github.com/t-lanigan/coffee-shop/internal/config"
)

// RedisClient returns the Redis client used to share the signing key set between
// replicas. It is nil unless AUTH_JWKS_CACHE_DRIVER is "redis".
func (c *Container) RedisClient() (*redis.Client, error) {
	var err error
	c.redisClientInit.Do(func() {
		c.redisClient, err = c.initRedisClient()
		if err != nil {
			c.initErrors["redisClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["redisClient"]; exists {
		return nil, storedErr
	}
	return c.redisClient, nil
}

// KeySetCache returns the shared key set document cache, or nil when the in-process
// cache is the only one.
func (c *Container) KeySetCache() (authService.KeySetCache, error) {
	var err error
	c.keySetCacheInit.Do(func() {
		c.keySetCache, err = c.initKeySetCache()
		if err != nil {
			c.initErrors["keySetCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySetCache"]; exists {
		return nil, storedErr
	}
	return c.keySetCache, nil
}

// KeySet returns the issuer's remote signing key set.
func (c *Container) KeySet() (*authService.RemoteKeySet, error) {
	var err error
	c.keySetInit.Do(func() {
		c.keySet, err = c.initKeySet()
		if err != nil {
			c.initErrors["keySet"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySet"]; exists {
		return nil, storedErr
	}
	return c.keySet, nil
}

// TokenAuthorizer returns the bearer token authorizer, instrumented with business metrics.
func (c *Container) TokenAuthorizer() (authService.TokenAuthorizer, error) {
	var err error
	c.tokenAuthorizerInit.Do(func() {
		c.tokenAuthorizer, err = c.initTokenAuthorizer()
		if err != nil {
			c.initErrors["tokenAuthorizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenAuthorizer"]; exists {
		return nil, storedErr
	}
	return c.tokenAuthorizer, nil
}

func (c *Container) initRedisClient() (*redis.Client, error) {
	if c.config.AuthJWKSCacheDriver != config.JWKSCacheDriverRedis {
		return nil, nil
	}

	opts, err := redis.ParseURL(c.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (c *Container) initKeySetCache() (authService.KeySetCache, error) {
	switch c.config.AuthJWKSCacheDriver {
	case "", config.JWKSCacheDriverNone:
		return nil, nil
	case config.JWKSCacheDriverRedis:
		redisClient, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for key set cache: %w", err)
		}
		return authRepository.NewRedisKeySetCache(redisClient, c.config.AuthJWKSURL), nil
	default:
		return nil, fmt.Errorf("unsupported key set cache driver: %s", c.config.AuthJWKSCacheDriver)
	}
}

func (c *Container) initKeySet() (*authService.RemoteKeySet, error) {
	cache, err := c.KeySetCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get key set cache: %w", err)
	}

	keySetConfig := authService.KeySetConfig{
		URL:                c.config.AuthJWKSURL,
		TTL:                c.config.AuthJWKSCacheTTL,
		FetchTimeout:       c.config.AuthJWKSFetchTimeout,
		FetchRetries:       c.config.AuthJWKSFetchRetries,
		MinRefreshInterval: c.config.AuthJWKSMinRefreshInterval,
	}

	return authService.NewRemoteKeySet(keySetConfig, nil, cache, c.Logger()), nil
}

func (c *Container) initTokenAuthorizer() (authService.TokenAuthorizer, error) {
	keySet, err := c.KeySet()
	if err != nil {
		return nil, fmt.Errorf("failed to get key set for token authorizer: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token authorizer: %w", err)
	}

	authorizer := authService.NewTokenAuthorizer(authService.AuthorizerConfig{
		Issuer:    c.config.AuthIssuerURL,
		Audience:  c.config.AuthAudience,
		Algorithm: c.config.AuthAlgorithm,
		Leeway:    c.config.AuthLeeway,
	}, keySet, c.Logger())

	return authService.NewTokenAuthorizerWithMetrics(authorizer, businessMetrics), nil
}
