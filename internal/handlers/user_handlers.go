package handlers

import (
	"net/http"

	"vgauth/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandlers handles user-related HTTP requests
type UserHandlers struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles GET /users. The optional tenantId query parameter
// restricts the result to one tenant.
func (h *UserHandlers) ListUsers(c echo.Context) error {
	filter := &services.ListUsersFilter{TenantID: c.QueryParam("tenantId")}

	users, err := h.userService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req services.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user": user,
	})
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	var req services.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}
