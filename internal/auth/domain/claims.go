package domain

import (
	"slices"
	"time"
)

// Claims holds the verified claim set of a bearer token.
// Registered claims are typed; anything else the issuer adds lands in Extra.
type Claims struct {
	// Issuer is the "iss" claim.
	Issuer string
	// Audience is the "aud" claim, normalized to a list.
	Audience []string
	// Subject is the "sub" claim identifying the caller.
	Subject string
	// ExpiresAt is the "exp" claim.
	ExpiresAt time.Time
	// IssuedAt is the "iat" claim, zero when absent.
	IssuedAt time.Time
	// Permissions is the ordered "permissions" claim.
	Permissions []string
	// Extra holds unrecognized claims keyed by name.
	Extra map[string]any
}

// HasPermission reports whether the exact permission string was granted.
// No permission is inferred: prefixes, wildcards and case differences do not match.
func (c *Claims) HasPermission(permission string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Permissions, permission)
}
