// Package http provides HTTP middleware and utilities for token authorization.
package http

import (
	"context"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
)

// claimsKey is a context key type for storing verified claims.
type claimsKey struct{}

// permissionKey is a context key type for storing the permission a request was authorized for.
type permissionKey struct{}

// WithClaims stores verified token claims in the context.
// This is typically called by RequirePermission after a successful authorization.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified token claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) otherwise.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok
}

// WithPermission stores the permission the request was authorized for.
func WithPermission(ctx context.Context, permission string) context.Context {
	return context.WithValue(ctx, permissionKey{}, permission)
}

// GetPermission retrieves the permission the request was authorized for.
func GetPermission(ctx context.Context) (string, bool) {
	permission, ok := ctx.Value(permissionKey{}).(string)
	return permission, ok
}
