package backend

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
)

// PostDiscountDecision POST /internal/notifications/discount
func (h *Handlers) PostDiscountDecision(c echo.Context) error {
	var req model.DiscountDecision
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.DecidedAt.IsZero() {
		req.DecidedAt = time.Now()
	}

	h.Hub.Publish(hub.Message{
		Name: event.DiscountDecided,
		Fields: hub.Fields{
			"decision": req,
		},
	})
	h.Logger.Debug("discount decision accepted", zap.Int("sellerID", req.SellerID), zap.Int("customerID", req.CustomerID))
	return c.NoContent(http.StatusAccepted)
}
