package handlers

import (
	"context"
	"net/http"
	"time"

	"vgauth/internal/caching"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db      Pinger
	cache   caching.CacheService
	version string
	started time.Time
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db Pinger, cache caching.CacheService, version string, logger *zap.Logger) *HealthHandlers {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		version: version,
		started: time.Now(),
		logger:  logger,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// Root answers GET / so load balancers have something trivial to probe.
func (h *HealthHandlers) Root(c echo.Context) error {
	return c.String(http.StatusOK, "hello world")
}

// HealthCheck reports the state of every backing service. A failing
// dependency degrades the status but the process is still alive.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.started).Truncate(time.Second).String(),
	}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cache.Ping(ctx); err != nil {
		h.logger.Warn("cache health check failed", zap.Error(err))
		health.Services["cache"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["cache"] = "healthy"
	}

	return c.JSON(http.StatusOK, health)
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the database is critical; the tenant cache is an optimisation.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
