package handlers

import (
	"vgauth/internal/metrics"
	"vgauth/internal/middleware"
	"vgauth/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Router bundles everything RegisterRoutes needs.
type Router struct {
	Tenants *TenantHandlers
	Users   *UserHandlers
	Auth    *AuthHandlers
	Health  *HealthHandlers

	Tokens      services.TokenService
	AdminSecret string
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// RegisterRoutes mounts the public probes and the secret-guarded API on e.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.Health.Root)
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(r.Metrics.Handler()))

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	api := e.Group("", middleware.AuditTrail(logger), middleware.RequireSecret(r.AdminSecret))

	api.GET("/tenants", r.Tenants.ListTenants)
	api.POST("/tenants", r.Tenants.CreateTenant)
	api.PUT("/tenants/:id", r.Tenants.UpdateTenant)
	api.DELETE("/tenants/:id", r.Tenants.DeleteTenant)

	api.GET("/users", r.Users.ListUsers)
	api.POST("/users", r.Users.CreateUser)
	api.PUT("/users/:id", r.Users.UpdateUser)
	api.DELETE("/users/:id", r.Users.DeleteUser)

	api.POST("/authenticate", r.Auth.Authenticate)
	api.GET("/me", r.Auth.Me, middleware.BearerAuth(r.Tokens))
}
