package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authService "github.com/t-lanigan/coffee-shop/internal/auth/service"
	"github.com/t-lanigan/coffee-shop/internal/httputil"
)

// RequirePermission guards a route with bearer token authorization.
//
// The middleware:
// 1. Passes the request headers and the required permission to the authorizer
// 2. Writes the authorization failure (400, 401 or 403) and aborts when it fails
// 3. Stores the verified claims and the permission in the request context
// 4. Allows downstream handlers to access the claims via GetClaims()
//
// Usage:
//
//	router.POST("/drinks",
//	    RequirePermission(authorizer, authDomain.PostDrinksPermission.String(), logger),
//	    handler.CreateHandler)
func RequirePermission(
	authorizer authService.TokenAuthorizer,
	permission string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authorizer.Authorize(c.Request.Context(), c.Request.Header, permission)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		ctx = WithPermission(ctx, permission)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authorization successful",
			slog.String("subject", claims.Subject),
			slog.String("permission", permission))

		c.Next()
	}
}
