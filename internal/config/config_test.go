package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "https://coffee-shop.us.auth0.com/", cfg.AuthIssuerURL)
				assert.Equal(t, "drinks", cfg.AuthAudience)
				assert.Equal(t, "RS256", cfg.AuthAlgorithm)
				assert.Equal(t, "https://coffee-shop.us.auth0.com/.well-known/jwks.json", cfg.AuthJWKSURL)
				assert.Zero(t, cfg.AuthLeeway)
				assert.Equal(t, 10*time.Minute, cfg.AuthJWKSCacheTTL)
				assert.Equal(t, 5*time.Second, cfg.AuthJWKSFetchTimeout)
				assert.Equal(t, 2, cfg.AuthJWKSFetchRetries)
				assert.Equal(t, 30*time.Second, cfg.AuthJWKSMinRefreshInterval)
				assert.Equal(t, "none", cfg.AuthJWKSCacheDriver)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.True(t, cfg.CORSEnabled)
				assert.Equal(t, "*", cfg.CORSAllowOrigins)
				assert.Equal(t, "coffee_shop", cfg.MetricsNamespace)
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom auth configuration",
			envVars: map[string]string{
				"AUTH_ISSUER_URL":     "https://tenant.eu.auth0.com",
				"AUTH_AUDIENCE":       "coffee",
				"AUTH_ALGORITHM":      "ES256",
				"AUTH_LEEWAY_SECONDS": "30",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://tenant.eu.auth0.com", cfg.AuthIssuerURL)
				assert.Equal(t, "coffee", cfg.AuthAudience)
				assert.Equal(t, "ES256", cfg.AuthAlgorithm)
				assert.Equal(t, "https://tenant.eu.auth0.com/.well-known/jwks.json", cfg.AuthJWKSURL)
				assert.Equal(t, 30*time.Second, cfg.AuthLeeway)
			},
		},
		{
			name: "load explicit key set configuration",
			envVars: map[string]string{
				"AUTH_JWKS_URL":                          "https://keys.example.com/jwks.json",
				"AUTH_JWKS_CACHE_TTL_SECONDS":            "60",
				"AUTH_JWKS_FETCH_TIMEOUT_SECONDS":        "2",
				"AUTH_JWKS_FETCH_RETRIES":                "0",
				"AUTH_JWKS_MIN_REFRESH_INTERVAL_SECONDS": "5",
				"AUTH_JWKS_CACHE_DRIVER":                 "redis",
				"REDIS_URL":                              "redis://cache:6379/2",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://keys.example.com/jwks.json", cfg.AuthJWKSURL)
				assert.Equal(t, time.Minute, cfg.AuthJWKSCacheTTL)
				assert.Equal(t, 2*time.Second, cfg.AuthJWKSFetchTimeout)
				assert.Equal(t, 0, cfg.AuthJWKSFetchRetries)
				assert.Equal(t, 5*time.Second, cfg.AuthJWKSMinRefreshInterval)
				assert.Equal(t, "redis", cfg.AuthJWKSCacheDriver)
				assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:                DBDriverPostgres,
			AuthIssuerURL:           "https://coffee-shop.us.auth0.com/",
			AuthAudience:            "drinks",
			AuthAlgorithm:           "RS256",
			AuthJWKSURL:             "https://coffee-shop.us.auth0.com/.well-known/jwks.json",
			AuthJWKSCacheDriver:     JWKSCacheDriverNone,
			RateLimitEnabled:        true,
			RateLimitRequestsPerSec: 10,
			RateLimitBurst:          20,
		}
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:   "empty issuer",
			mutate: func(cfg *Config) { cfg.AuthIssuerURL = "" },
			errMsg: "AUTH_ISSUER_URL is required",
		},
		{
			name:   "blank audience",
			mutate: func(cfg *Config) { cfg.AuthAudience = "  " },
			errMsg: "AUTH_AUDIENCE is required",
		},
		{
			name:   "symmetric algorithm",
			mutate: func(cfg *Config) { cfg.AuthAlgorithm = "HS256" },
			errMsg: `unsupported AUTH_ALGORITHM: "HS256"`,
		},
		{
			name:   "none algorithm",
			mutate: func(cfg *Config) { cfg.AuthAlgorithm = "none" },
			errMsg: "unsupported AUTH_ALGORITHM",
		},
		{
			name:   "negative leeway",
			mutate: func(cfg *Config) { cfg.AuthLeeway = -time.Second },
			errMsg: "AUTH_LEEWAY_SECONDS must not be negative",
		},
		{
			name:   "unknown database driver",
			mutate: func(cfg *Config) { cfg.DBDriver = "sqlite" },
			errMsg: `unsupported DB_DRIVER: "sqlite"`,
		},
		{
			name:   "unknown cache driver",
			mutate: func(cfg *Config) { cfg.AuthJWKSCacheDriver = "memcached" },
			errMsg: `unsupported AUTH_JWKS_CACHE_DRIVER: "memcached"`,
		},
		{
			name: "redis without url",
			mutate: func(cfg *Config) {
				cfg.AuthJWKSCacheDriver = JWKSCacheDriverRedis
				cfg.RedisURL = ""
			},
			errMsg: "REDIS_URL is required",
		},
		{
			name:   "zero rate limit",
			mutate: func(cfg *Config) { cfg.RateLimitBurst = 0 },
			errMsg: "RATE_LIMIT_REQUESTS_PER_SEC and RATE_LIMIT_BURST must be positive",
		},
		{
			name: "zero rate limit ignored when disabled",
			mutate: func(cfg *Config) {
				cfg.RateLimitEnabled = false
				cfg.RateLimitBurst = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Validate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{DBDriver: "oracle", AuthAlgorithm: "HS512", AuthJWKSCacheDriver: "none"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_ISSUER_URL is required")
	assert.Contains(t, err.Error(), "AUTH_AUDIENCE is required")
	assert.Contains(t, err.Error(), "unsupported AUTH_ALGORITHM")
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestDefaultJWKSURL(t *testing.T) {
	assert.Equal(t, "https://a.auth0.com/.well-known/jwks.json", DefaultJWKSURL("https://a.auth0.com/"))
	assert.Equal(t, "https://a.auth0.com/.well-known/jwks.json", DefaultJWKSURL("https://a.auth0.com"))
	assert.Empty(t, DefaultJWKSURL(""))
}
