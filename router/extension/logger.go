package extension

import (
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
)

// GetRequestID リクエストIDを返します
func GetRequestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); len(rid) > 0 {
		return rid
	}
	rid := c.Request().Header.Get(echo.HeaderXRequestID)
	if len(rid) == 0 {
		rid = uuid.Must(uuid.NewV4()).String()
	}
	return rid
}
