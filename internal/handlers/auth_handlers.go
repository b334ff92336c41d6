package handlers

import (
	"net/http"

	"vgauth/internal/middleware"
	"vgauth/internal/models"
	"vgauth/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
	logger      *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate handles POST /authenticate
func (h *AuthHandlers) Authenticate(c echo.Context) error {
	var req services.AuthenticateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	token, err := h.authService.Authenticate(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, models.AuthenticateResponse{
		Status: "success",
		Token:  token,
	})
}

// Me handles GET /me and echoes the claim of the presented bearer token.
func (h *AuthHandlers) Me(c echo.Context) error {
	claim, ok := middleware.ClaimFromContext(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"claim": claim,
	})
}
