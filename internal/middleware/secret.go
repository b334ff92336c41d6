package middleware

import (
	"crypto/subtle"
	"net/http"

	"vgauth/internal/common"

	"github.com/labstack/echo/v4"
)

// SecretHeader carries the shared admin secret every API call must present.
const SecretHeader = "x-authenticate-secret"

// RequireSecret rejects requests whose SecretHeader does not match secret.
func RequireSecret(secret string) echo.MiddlewareFunc {
	expected := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := []byte(c.Request().Header.Get(SecretHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
			}
			return next(c)
		}
	}
}
