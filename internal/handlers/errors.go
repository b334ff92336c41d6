package handlers

import (
	"errors"
	"net/http"

	"vgauth/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps the shared error kinds to status codes. Anything
// unrecognised is logged and answered with a generic 500.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", common.PublicMessage(err, "Validation failed"), nil))
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", common.PublicMessage(err, "Resource not found"), nil))
	case errors.Is(err, common.ErrConflict):
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("CONFLICT", common.PublicMessage(err, "Resource already exists"), nil))
	case errors.Is(err, common.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", common.PublicMessage(err, "Unauthorized access"), nil))
	case errors.Is(err, common.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_TOKEN", "Invalid token", nil))
	default:
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, common.CreateErrorResponse("SERVER_ERROR", "Internal server error", nil))
	}
}

// bindJSON decodes the request body, reporting malformed JSON as a
// validation error.
func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return common.Validation("Invalid request format")
	}
	return nil
}
