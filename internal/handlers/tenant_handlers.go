package handlers

import (
	"net/http"

	"vgauth/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandlers handles tenant-related HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
	logger        *zap.Logger
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService, logger *zap.Logger) *TenantHandlers {
	return &TenantHandlers{
		tenantService: tenantService,
		logger:        logger,
	}
}

// ListTenants handles GET /tenants
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
	})
}

// CreateTenant handles POST /tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"tenant": tenant,
	})
}

// UpdateTenant handles PUT /tenants/:id
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	var req services.RenameTenantRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	tenant, err := h.tenantService.Rename(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenant": tenant,
	})
}

// DeleteTenant handles DELETE /tenants/:id. Users of the tenant are kept.
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	if err := h.tenantService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}
