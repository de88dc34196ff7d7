package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "bearer"
	permissionsClaim    = "permissions"
)

// registeredClaimNames are decoded into typed Claims fields instead of Extra.
var registeredClaimNames = map[string]struct{}{
	"iss":            {},
	"aud":            {},
	"sub":            {},
	"exp":            {},
	"iat":            {},
	permissionsClaim: {},
}

// AuthorizerConfig holds the expectations a token must satisfy.
type AuthorizerConfig struct {
	// Issuer is the expected "iss" claim (issuer URL).
	Issuer string
	// Audience is the expected "aud" claim.
	Audience string
	// Algorithm is the only signing algorithm accepted (e.g., "RS256").
	Algorithm string
	// Leeway tolerates clock skew when validating time based claims.
	Leeway time.Duration
}

// tokenHeader is the unverified JOSE header of a compact JWT.
type tokenHeader struct {
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid"`
}

// tokenAuthorizer implements TokenAuthorizer with golang-jwt.
type tokenAuthorizer struct {
	config AuthorizerConfig
	keySet KeySet
	logger *slog.Logger
	now    func() time.Time
}

// NewTokenAuthorizer creates a TokenAuthorizer that verifies tokens against keySet.
func NewTokenAuthorizer(cfg AuthorizerConfig, keySet KeySet, logger *slog.Logger) TokenAuthorizer {
	return &tokenAuthorizer{
		config: cfg,
		keySet: keySet,
		logger: logger,
		now:    time.Now,
	}
}

// Authorize verifies the bearer token in headers and checks it grants permission.
func (a *tokenAuthorizer) Authorize(
	ctx context.Context,
	headers http.Header,
	permission string,
) (*authDomain.Claims, error) {
	rawToken, err := extractBearerToken(headers)
	if err != nil {
		return nil, err
	}

	parser := a.newParser()

	header, err := decodeTokenHeader(parser, rawToken)
	if err != nil {
		a.logger.Debug("authorization failed: malformed token header", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", authDomain.ErrMalformedToken, err)
	}

	key, err := a.keySet.Key(ctx, header.KeyID)
	if err != nil {
		a.logger.Debug("authorization failed: signing key not resolved",
			slog.String("kid", header.KeyID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", authDomain.ErrUnknownSigningKey, err)
	}

	mapClaims := jwt.MapClaims{}
	_, err = parser.ParseWithClaims(rawToken, mapClaims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		a.logger.Debug("authorization failed: token verification",
			slog.String("kid", header.KeyID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", classifyVerificationError(err, mapClaims), err)
	}

	claims, err := decodeClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if permission == "" || !claims.HasPermission(permission) {
		a.logger.Debug("authorization failed: permission not granted",
			slog.String("subject", claims.Subject),
			slog.String("permission", permission))
		return nil, authDomain.ErrPermissionDenied
	}

	return claims, nil
}

// newParser builds a parser that only accepts the configured algorithm, never the
// one the token declares for itself.
func (a *tokenAuthorizer) newParser() *jwt.Parser {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.config.Algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.config.Issuer),
		jwt.WithAudience(a.config.Audience),
		jwt.WithTimeFunc(a.now),
	}
	if a.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(a.config.Leeway))
	}
	return jwt.NewParser(options...)
}

// extractBearerToken reads "Authorization: Bearer <token>".
func extractBearerToken(headers http.Header) (string, error) {
	values := headers.Values(authorizationHeader)
	if len(values) == 0 {
		return "", authDomain.ErrMissingAuthHeader
	}

	parts := strings.Split(values[0], " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || parts[1] == "" {
		return "", authDomain.ErrMalformedAuthHeader
	}

	return parts[1], nil
}

func decodeTokenHeader(parser *jwt.Parser, rawToken string) (*tokenHeader, error) {
	segments := strings.Split(rawToken, ".")
	if len(segments) != 3 {
		return nil, errors.New("token must have three segments")
	}

	decoded, err := parser.DecodeSegment(segments[0])
	if err != nil {
		return nil, err
	}

	var header tokenHeader
	if err := json.Unmarshal(decoded, &header); err != nil {
		return nil, err
	}
	if header.KeyID == "" {
		return nil, errors.New("token header has no kid")
	}

	return &header, nil
}

// classifyVerificationError maps golang-jwt failures onto the authorization taxonomy.
// Expiry wins over audience or issuer mismatches when several claims are invalid.
// mapClaims is decoded before the signature is checked, so it is only consulted for
// ErrTokenRequiredClaimMissing, which the validator reports after a successful
// signature check.
func classifyVerificationError(err error, mapClaims jwt.MapClaims) *authDomain.AuthError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return authDomain.ErrInvalidAudienceOrIssuer
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing) && missingAudienceOrIssuer(mapClaims):
		return authDomain.ErrInvalidAudienceOrIssuer
	default:
		return authDomain.ErrInvalidTokenClaims
	}
}

func missingAudienceOrIssuer(mapClaims jwt.MapClaims) bool {
	audience, _ := mapClaims.GetAudience()
	issuer, _ := mapClaims.GetIssuer()
	return len(audience) == 0 || issuer == ""
}

// decodeClaims converts verified map claims into typed Claims.
func decodeClaims(mapClaims jwt.MapClaims) (*authDomain.Claims, error) {
	rawPermissions, ok := mapClaims[permissionsClaim]
	if !ok {
		return nil, authDomain.ErrPermissionsClaimMissing
	}
	permissions, ok := toStringSlice(rawPermissions)
	if !ok {
		return nil, authDomain.ErrPermissionsClaimMissing
	}

	claims := &authDomain.Claims{
		Permissions: permissions,
		Extra:       map[string]any{},
	}
	claims.Issuer, _ = mapClaims.GetIssuer()
	claims.Subject, _ = mapClaims.GetSubject()
	if audience, err := mapClaims.GetAudience(); err == nil {
		claims.Audience = []string(audience)
	}
	if expiresAt, err := mapClaims.GetExpirationTime(); err == nil && expiresAt != nil {
		claims.ExpiresAt = expiresAt.Time
	}
	if issuedAt, err := mapClaims.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}

	for name, value := range mapClaims {
		if _, registered := registeredClaimNames[name]; registered {
			continue
		}
		claims.Extra[name] = value
	}

	return claims, nil
}

func toStringSlice(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
