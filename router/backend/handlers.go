package backend

import (
	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/router/middlewares"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/notification"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/ws"
	"github.com/ventas-crm/tracker/utils/jwt"
)

// Handlers CRMバックエンド向け内部APIハンドラ
type Handlers struct {
	Hub          *hub.Hub
	Registry     *presence.Registry
	Locations    *location.Store
	WS           *ws.Streamer
	Notification *notification.Service
	Signer       *jwt.Signer
	Logger       *zap.Logger
}

// Setup APIルーティングを行います
func (h *Handlers) Setup(e *echo.Group, mws ...echo.MiddlewareFunc) {
	api := e.Group("/internal", append(mws, middlewares.BackendAuthenticate(h.Signer))...)
	{
		api.GET("/presence", h.GetPresence)
		api.GET("/locations", h.GetLocations)
		api.GET("/locations/:userID", h.GetLocation)
		api.GET("/sessions", h.GetSessions)
		api.POST("/notifications/discount", h.PostDiscountDecision)
		api.POST("/events", h.PostEvent)
	}
}
