//go:build wireinject
// +build wireinject

package cmd

import (
	"github.com/google/wire"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/repository"
	"github.com/ventas-crm/tracker/router"
	"github.com/ventas-crm/tracker/service"
	"github.com/ventas-crm/tracker/service/directory"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/notification"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/rbac"
	"github.com/ventas-crm/tracker/service/ws"
)

func newServer(hub *hub.Hub, repo repository.LocationRepository, logger *zap.Logger, c *Config) (*Server, error) {
	wire.Build(
		directory.New,
		location.NewManager,
		location.NewPersister,
		location.NewStore,
		notification.NewService,
		presence.NewRegistry,
		rbac.New,
		ws.NewStreamer,
		router.Setup,
		provideDirectoryConfig,
		provideLocationConfig,
		provideNotificationConfig,
		provideRouterConfig,
		provideWSConfig,
		wire.Struct(new(service.Services), "*"),
		wire.Struct(new(Server), "*"),
	)
	return nil, nil
}
