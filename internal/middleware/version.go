package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionHeaderName carries the running service version on every response.
const VersionHeaderName = "X-Service-Version"

// VersionHeader adds version information to response headers
func VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(VersionHeaderName, version)
			return next(c)
		}
	}
}
