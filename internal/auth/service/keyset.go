package service

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultKeySetTTL          = 10 * time.Minute
	defaultKeySetFetchTimeout = 5 * time.Second
	defaultKeySetRetryBase    = 200 * time.Millisecond
	defaultKeySetRetryMax     = 2 * time.Second
	defaultKeySetMinRefresh   = 30 * time.Second
	maxKeySetDocumentSize     = 1 << 20
)

const (
	keySetRefreshFromCache  = "cache"
	keySetRefreshFromRemote = "remote"

	jwkUseSignature = "sig"
	jwkKeyTypeRSA   = "RSA"
	jwkKeyTypeEC    = "EC"
)

var (
	// ErrKeyNotFound indicates no published key matches the requested key identifier.
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrKeySetUnavailable indicates the key set could not be fetched or parsed.
	ErrKeySetUnavailable = errors.New("signing key set unavailable")
)

// KeySetConfig configures a RemoteKeySet.
type KeySetConfig struct {
	// URL is the issuer's published key set endpoint.
	URL string
	// TTL is how long a fetched key set is trusted before it is fetched again.
	TTL time.Duration
	// FetchTimeout bounds a whole fetch, retries included.
	FetchTimeout time.Duration
	// FetchRetries is the number of extra attempts after a failed fetch.
	FetchRetries int
	// MinRefreshInterval throttles forced refreshes triggered by unknown key identifiers.
	MinRefreshInterval time.Duration
}

type jsonWebKeySet struct {
	Keys []jsonWebKey `json:"keys"`
}

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// RemoteKeySet fetches and caches the issuer's JSON Web Key Set.
// It is safe for concurrent use.
type RemoteKeySet struct {
	config     KeySetConfig
	httpClient *http.Client
	cache      KeySetCache
	logger     *slog.Logger
	now        func() time.Time
	group      singleflight.Group

	mu              sync.RWMutex
	keys            map[string]crypto.PublicKey
	expiresAt       time.Time
	lastRemoteFetch time.Time
}

// NewRemoteKeySet creates a key set backed by the given endpoint. cache may be nil.
func NewRemoteKeySet(
	cfg KeySetConfig,
	httpClient *http.Client,
	cache KeySetCache,
	logger *slog.Logger,
) *RemoteKeySet {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultKeySetTTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultKeySetFetchTimeout
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.MinRefreshInterval <= 0 {
		cfg.MinRefreshInterval = defaultKeySetMinRefresh
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.FetchTimeout}
	}

	return &RemoteKeySet{
		config:     cfg,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
		keys:       map[string]crypto.PublicKey{},
	}
}

// Key returns the public key published under kid.
func (k *RemoteKeySet) Key(ctx context.Context, kid string) (crypto.PublicKey, error) {
	if kid == "" {
		return nil, ErrKeyNotFound
	}

	key, fresh := k.lookup(kid)
	if fresh && key != nil {
		return key, nil
	}

	if !fresh {
		if err := k.refresh(ctx, keySetRefreshFromCache); err != nil {
			return nil, err
		}
		if key, _ = k.lookup(kid); key != nil {
			return key, nil
		}
	}

	// The issuer may have rotated keys since the last fetch.
	if !k.reserveForcedRefresh() {
		return nil, ErrKeyNotFound
	}
	if err := k.refresh(ctx, keySetRefreshFromRemote); err != nil {
		return nil, err
	}
	if key, _ = k.lookup(kid); key != nil {
		return key, nil
	}

	return nil, ErrKeyNotFound
}

func (k *RemoteKeySet) lookup(kid string) (crypto.PublicKey, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	fresh := k.now().Before(k.expiresAt)
	return k.keys[kid], fresh
}

func (k *RemoteKeySet) reserveForcedRefresh() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if !k.lastRemoteFetch.IsZero() && now.Sub(k.lastRemoteFetch) < k.config.MinRefreshInterval {
		return false
	}
	k.lastRemoteFetch = now
	return true
}

// refresh collapses concurrent refreshes of the same source into one load. The shared
// load is detached from the caller that started it and bounded by FetchTimeout; each
// caller stops waiting when its own ctx is done.
func (k *RemoteKeySet) refresh(ctx context.Context, source string) error {
	loadCtx := context.WithoutCancel(ctx)
	result := k.group.DoChan(source, func() (any, error) {
		return nil, k.load(loadCtx, source == keySetRefreshFromRemote)
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, ctx.Err())
	case res := <-result:
		return res.Err
	}
}

func (k *RemoteKeySet) load(ctx context.Context, remoteOnly bool) error {
	if !remoteOnly && k.cache != nil {
		if keys, ok := k.loadFromCache(ctx); ok {
			k.store(keys, false)
			return nil
		}
	}

	document, err := k.fetchWithRetry(ctx)
	if err != nil {
		k.logger.Warn("failed to fetch signing key set",
			slog.String("url", k.config.URL),
			slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}

	keys, err := parseKeySet(document)
	if err != nil {
		k.logger.Warn("failed to parse signing key set",
			slog.String("url", k.config.URL),
			slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}

	k.store(keys, true)
	k.logger.Debug("signing key set refreshed", slog.Int("key_count", len(keys)))

	if k.cache != nil {
		if err := k.cache.Set(ctx, document, k.config.TTL); err != nil {
			k.logger.Warn("failed to store signing key set in cache", slog.Any("error", err))
		}
	}

	return nil
}

func (k *RemoteKeySet) loadFromCache(ctx context.Context) (map[string]crypto.PublicKey, bool) {
	document, found, err := k.cache.Get(ctx)
	if err != nil {
		k.logger.Warn("failed to read signing key set from cache", slog.Any("error", err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	keys, err := parseKeySet(document)
	if err != nil {
		k.logger.Warn("cached signing key set is unusable", slog.Any("error", err))
		return nil, false
	}
	return keys, true
}

func (k *RemoteKeySet) store(keys map[string]crypto.PublicKey, remote bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.keys = keys
	k.expiresAt = now.Add(k.config.TTL)
	if remote {
		k.lastRemoteFetch = now
	}
}

func (k *RemoteKeySet) fetchWithRetry(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, k.config.FetchTimeout)
	defer cancel()

	delay := defaultKeySetRetryBase
	var lastErr error
	for attempt := 0; attempt <= k.config.FetchRetries; attempt++ {
		if attempt > 0 {
			if err := sleepWithContext(ctx, delay); err != nil {
				return nil, errors.Join(lastErr, err)
			}
			delay = min(delay*2, defaultKeySetRetryMax)
		}

		document, err := k.fetchOnce(ctx)
		if err == nil {
			return document, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, errors.Join(lastErr, ctx.Err())
		}
	}
	return nil, lastErr
}

func (k *RemoteKeySet) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.config.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxKeySetDocumentSize))
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseKeySet decodes a key set document, skipping entries that cannot verify signatures.
func parseKeySet(document []byte) (map[string]crypto.PublicKey, error) {
	var set jsonWebKeySet
	if err := json.Unmarshal(document, &set); err != nil {
		return nil, fmt.Errorf("invalid key set document: %w", err)
	}

	keys := make(map[string]crypto.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Kid == "" || (jwk.Use != "" && jwk.Use != jwkUseSignature) {
			continue
		}

		var (
			key crypto.PublicKey
			err error
		)
		switch jwk.Kty {
		case jwkKeyTypeRSA:
			key, err = jwkToRSAPublicKey(jwk)
		case jwkKeyTypeEC:
			key, err = jwkToECDSAPublicKey(jwk)
		default:
			continue
		}
		if err != nil {
			continue
		}
		keys[jwk.Kid] = key
	}

	if len(keys) == 0 {
		return nil, errors.New("key set contains no usable signing keys")
	}
	return keys, nil
}

func jwkToRSAPublicKey(jwk jsonWebKey) (*rsa.PublicKey, error) {
	if jwk.N == "" || jwk.E == "" {
		return nil, errors.New("missing rsa params")
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, err
	}

	e := new(big.Int).SetBytes(eBytes).Int64()
	if e <= 1 || e > int64(^uint32(0)>>1) {
		return nil, errors.New("invalid rsa exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e),
	}, nil
}

func jwkToECDSAPublicKey(jwk jsonWebKey) (*ecdsa.PublicKey, error) {
	var curve elliptic.Curve
	switch jwk.Crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("unsupported curve %q", jwk.Crv)
	}

	xBytes, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, err
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(jwk.Y)
	if err != nil {
		return nil, err
	}

	x := new(big.Int).SetBytes(xBytes)
	y := new(big.Int).SetBytes(yBytes)
	if !curve.IsOnCurve(x, y) {
		return nil, errors.New("ec point is not on curve")
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
