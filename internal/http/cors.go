package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const allowAllOrigins = "*"

// createCORSMiddleware creates a CORS middleware based on configuration.
// The drinks menu is consumed by a browser frontend, so CORS is enabled by default.
//
// Configuration:
//   - enabled: Whether CORS is enabled
//   - allowOriginsStr: Comma-separated list of allowed origins, or "*" for any origin
//
// Returns nil if disabled or no valid origins are configured. Credentials are only
// allowed for an explicit origin list.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Authorization",
			"Content-Type",
		},
		ExposeHeaders: []string{
			"X-Request-Id",
		},
		MaxAge: 12 * time.Hour,
	}

	if len(origins) == 1 && origins[0] == allowAllOrigins {
		config.AllowAllOrigins = true
		logger.Info("CORS enabled for all origins")
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
		logger.Info("CORS enabled",
			slog.Int("origin_count", len(origins)),
			slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins parses comma-separated origin list and trims whitespace.
// Returns nil if input is empty.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	parts := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
