package domain

import (
	"fmt"
	"net/http"

	apperrors "github.com/t-lanigan/coffee-shop/internal/errors"
)

// AuthError is a typed authorization failure.
// StatusCode is surfaced as the HTTP response code; Code and Description may be
// included in the response body.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
	class       error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Description)
}

// Unwrap exposes the generic error class so callers matching apperrors.ErrUnauthorized,
// apperrors.ErrForbidden or apperrors.ErrInvalidInput keep working.
func (e *AuthError) Unwrap() error {
	return e.class
}

func newAuthError(statusCode int, code, description string, class error) *AuthError {
	return &AuthError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
		class:       class,
	}
}

// Authorization failures. Each one is a distinct, expected outcome of untrusted input.
var (
	// ErrMissingAuthHeader indicates the request carries no Authorization header.
	ErrMissingAuthHeader = newAuthError(
		http.StatusUnauthorized,
		"authorization_header_missing",
		"Authorization header is expected.",
		apperrors.ErrUnauthorized,
	)

	// ErrMalformedAuthHeader indicates the header is not "Bearer <token>".
	ErrMalformedAuthHeader = newAuthError(
		http.StatusUnauthorized,
		"invalid_header",
		"Authorization header must be in the format Bearer <token>.",
		apperrors.ErrUnauthorized,
	)

	// ErrMalformedToken indicates the token header segment cannot be decoded.
	ErrMalformedToken = newAuthError(
		http.StatusUnauthorized,
		"invalid_header",
		"Authorization malformed.",
		apperrors.ErrUnauthorized,
	)

	// ErrUnknownSigningKey indicates no published key matches the token's key identifier.
	ErrUnknownSigningKey = newAuthError(
		http.StatusUnauthorized,
		"invalid_header",
		"Unable to find the appropriate key.",
		apperrors.ErrUnauthorized,
	)

	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = newAuthError(
		http.StatusUnauthorized,
		"token_expired",
		"Token expired.",
		apperrors.ErrUnauthorized,
	)

	// ErrInvalidAudienceOrIssuer indicates the aud or iss claim does not match the deployment.
	ErrInvalidAudienceOrIssuer = newAuthError(
		http.StatusUnauthorized,
		"invalid_claims",
		"Incorrect claims. Please, check the audience and issuer.",
		apperrors.ErrUnauthorized,
	)

	// ErrInvalidTokenClaims covers every other verification failure.
	ErrInvalidTokenClaims = newAuthError(
		http.StatusUnauthorized,
		"invalid_header",
		"Unable to parse authentication token.",
		apperrors.ErrUnauthorized,
	)

	// ErrPermissionsClaimMissing indicates the issuer is not configured to emit permissions.
	ErrPermissionsClaimMissing = newAuthError(
		http.StatusBadRequest,
		"invalid_claims",
		"Permissions not included in JWT.",
		apperrors.ErrInvalidInput,
	)

	// ErrPermissionDenied indicates the token lacks the required permission.
	ErrPermissionDenied = newAuthError(
		http.StatusForbidden,
		"unauthorized",
		"Permission not found.",
		apperrors.ErrForbidden,
	)
)
