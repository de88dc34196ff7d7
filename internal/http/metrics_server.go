package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/t-lanigan/coffee-shop/internal/httputil"
	"github.com/t-lanigan/coffee-shop/internal/metrics"
)

const metricsScrapePath = "/metrics"

// MetricsServerConfig configures the Prometheus scrape server.
type MetricsServerConfig struct {
	Host string
	Port int
	// Namespace prefixes every exported drinks and authorization metric.
	Namespace string
}

// MetricsServer serves the drinks API metrics on a port separate from the API.
type MetricsServer struct {
	server    *http.Server
	logger    *slog.Logger
	namespace string
}

// NewMetricsServer exposes provider at /metrics. GET / describes the scrape target so
// operators can check the namespace without parsing the exposition format.
func NewMetricsServer(cfg MetricsServerConfig, logger *slog.Logger, provider *metrics.Provider) (*MetricsServer, error) {
	if provider == nil {
		return nil, errors.New("metrics server requires a metrics provider")
	}

	s := &MetricsServer{
		logger:    logger.With(slog.String("component", "metrics_server")),
		namespace: cfg.Namespace,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(scrapeLoggerMiddleware(s.logger))
	router.GET("/", s.targetHandler)
	router.GET(metricsScrapePath, gin.WrapH(provider.Handler()))
	router.NoRoute(httputil.NotFoundGin)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *MetricsServer) targetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"namespace": s.namespace,
		"path":      metricsScrapePath,
	})
}

// scrapeLoggerMiddleware logs scrapes at debug; anything else goes through the
// request logger.
func scrapeLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	requestLogger := CustomLoggerMiddleware(logger)
	return func(c *gin.Context) {
		if c.Request.URL.Path != metricsScrapePath {
			requestLogger(c)
			return
		}

		start := time.Now()
		c.Next()
		logger.Debug("metrics scraped",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()))
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves metrics until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server",
		slog.String("addr", s.server.Addr),
		slog.String("namespace", s.namespace))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the metrics HTTP server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
