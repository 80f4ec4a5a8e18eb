package middlewares

import (
	"strings"

	jwt5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ventas-crm/tracker/router/consts"
	"github.com/ventas-crm/tracker/router/extension/herror"
	"github.com/ventas-crm/tracker/utils/jwt"
)

const authScheme = "Bearer"

// BackendAuthenticate CRMバックエンドからのリクエスト認証ミドルウェア
func BackendAuthenticate(signer *jwt.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ah := c.Request().Header.Get(echo.HeaderAuthorization)
			if len(ah) == 0 {
				return herror.Unauthorized("no authorization header")
			}

			// Authorizationスキーム検証
			l := len(authScheme)
			if !(len(ah) > l+1 && strings.EqualFold(ah[:l], authScheme)) {
				return herror.Unauthorized("invalid authorization scheme")
			}

			var claims jwt5.RegisteredClaims
			if err := signer.Verify(ah[l+1:], &claims); err != nil {
				return herror.Unauthorized("invalid token")
			}

			c.Set(consts.KeyBackendIssuer, claims.Issuer)
			return next(c)
		}
	}
}
