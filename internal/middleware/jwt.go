package middleware

import (
	"net/http"

	"vgauth/internal/common"
	"vgauth/internal/models"
	"vgauth/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// ClaimContextKey is where BearerAuth stores the decoded *models.AuthClaim.
const ClaimContextKey = "auth_claim"

// BearerAuth validates "Authorization: Bearer <token>" with the token
// service and stores the decoded claim on both the echo context and the
// request context.
func BearerAuth(tokens services.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claim, err := tokens.Decode(auth)
			if err != nil {
				return nil, err
			}
			c.SetRequest(c.Request().WithContext(common.WithClaim(c.Request().Context(), claim)))
			return claim, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_TOKEN", "Invalid token", nil))
		},
	})
}

// ClaimFromContext returns the claim stored by BearerAuth.
func ClaimFromContext(c echo.Context) (*models.AuthClaim, bool) {
	claim, ok := c.Get(ClaimContextKey).(*models.AuthClaim)
	if ok && claim != nil {
		return claim, true
	}
	return common.GetClaimFromContext(c.Request().Context())
}
