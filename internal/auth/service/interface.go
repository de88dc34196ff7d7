// Package service implements bearer token authorization against a remote JSON Web Key Set.
//
// The authorizer extracts the token from the Authorization header, resolves the signing
// key by its key identifier, verifies signature and registered claims with the algorithm
// configured for the deployment and finally checks the permissions claim.
package service

import (
	"context"
	"crypto"
	"net/http"
	"time"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
)

// TokenAuthorizer verifies caller identity and permission in a single pass.
type TokenAuthorizer interface {
	// Authorize returns the decoded claims when the Authorization header carries a valid
	// bearer token granting permission. Failures are *authDomain.AuthError values.
	Authorize(ctx context.Context, headers http.Header, permission string) (*authDomain.Claims, error)
}

// KeySet resolves public verification keys by key identifier.
type KeySet interface {
	// Key returns the public key published under kid. Implementations fail closed:
	// fetch errors and timeouts are returned as errors, never as a fallback key.
	Key(ctx context.Context, kid string) (crypto.PublicKey, error)
}

// KeySetCache stores the raw key set document so replicas can share one fetch per TTL.
type KeySetCache interface {
	// Get returns the cached document and whether it was present.
	Get(ctx context.Context) ([]byte, bool, error)
	// Set stores the document for ttl.
	Set(ctx context.Context, document []byte, ttl time.Duration) error
}
