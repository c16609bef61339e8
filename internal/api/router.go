package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/service"
	"github.com/rs/zerolog"
)

// multipartOverhead is allowed on top of the upload limit for form boundaries and headers
const multipartOverhead = 1 << 20

// healthCheckTimeout bounds each dependency probe of /health
const healthCheckTimeout = 5 * time.Second

// HealthCheck probes one dependency for the /health endpoint
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, checks ...HealthCheck) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log, cfg))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins()))
	router.Use(bodyLimitMiddleware(cfg.Import.MaxUploadSize + multipartOverhead))

	// Handlers
	userHandler := NewUserHandler(services, cfg, log)
	importHandler := NewImportHandler(services, cfg, log)
	leadHandler := NewLeadHandler(services, cfg, log)

	// Static routes take precedence over the username parameter
	router.GET("/health", healthCheck(checks))
	router.POST("/user", userHandler.Register)
	router.POST("/login", userHandler.Login)

	// Per-user lead endpoints
	router.POST("/:username", importHandler.ImportLeads)
	router.GET("/:username", leadHandler.ListLeads)

	return router
}

// healthCheck reports the reachability of each dependency
func healthCheck(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		deps := gin.H{}

		for _, hc := range checks {
			ctx, cancel := contextWithTimeout(c, healthCheckTimeout)
			err := hc.Check(ctx)
			cancel()

			if err != nil {
				status = http.StatusServiceUnavailable
				deps[hc.Name] = "unhealthy"
				continue
			}
			deps[hc.Name] = "healthy"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":       state,
			"dependencies": deps,
			"timestamp":    time.Now().Format(time.RFC3339),
			"service":      "lead-import-api",
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				message := "Internal server error"
				if cfg.IsDevelopment() {
					if e, ok := err.(error); ok {
						message = e.Error()
					}
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware allows the configured origins only
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (wildcard || allowed[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps the number of bytes read from any request body
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
