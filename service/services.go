package service

import (
	"github.com/ventas-crm/tracker/service/directory"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/notification"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/rbac"
	"github.com/ventas-crm/tracker/service/ws"
)

type Services struct {
	Directory         directory.Directory
	LocationManager   *location.Manager
	LocationPersister *location.Persister
	LocationStore     *location.Store
	Notification      *notification.Service
	RBAC              rbac.RBAC
	Registry          *presence.Registry
	WS                *ws.Streamer
}
