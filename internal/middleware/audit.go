package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuditTrail records every state-changing API call, including rejected
// ones, on the "audit" logger. Request bodies are never logged.
func AuditTrail(logger *zap.Logger) echo.MiddlewareFunc {
	audit := logger.Named("audit")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if !isStateChanging(method) {
				return err
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			fields := []zap.Field{
				zap.String("action", method+" "+c.Path()),
				zap.Int("status", status),
				zap.String("remote_ip", c.RealIP()),
			}
			if id := c.Param("id"); id != "" {
				fields = append(fields, zap.String("resource_id", id))
			}

			if status >= http.StatusBadRequest {
				audit.Warn("request rejected", fields...)
			} else {
				audit.Info("request applied", fields...)
			}
			return err
		}
	}
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
