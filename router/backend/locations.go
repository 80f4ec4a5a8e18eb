package backend

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ventas-crm/tracker/router/extension/herror"
)

// GetLocations GET /internal/locations
func (h *Handlers) GetLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Locations.All())
}

// GetLocation GET /internal/locations/:userID
func (h *Handlers) GetLocation(c echo.Context) error {
	userID, err := getParamAsInt(c, "userID")
	if err != nil {
		return err
	}
	e, ok := h.Locations.Get(userID)
	if !ok {
		return herror.NotFound()
	}
	return c.JSON(http.StatusOK, e)
}
