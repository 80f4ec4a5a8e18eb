package backend

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/service/presence"
)

type presenceResponse struct {
	Counts  model.ConnectedUsers `json:"counts"`
	Entries []presence.Entry     `json:"entries"`
}

// GetPresence GET /internal/presence
func (h *Handlers) GetPresence(c echo.Context) error {
	return c.JSON(http.StatusOK, &presenceResponse{
		Counts:  h.Registry.CountsByRole(),
		Entries: h.Registry.Entries(),
	})
}
