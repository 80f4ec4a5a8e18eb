package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/router/backend"
	"github.com/ventas-crm/tracker/router/consts"
	"github.com/ventas-crm/tracker/router/extension"
	"github.com/ventas-crm/tracker/router/middlewares"
	"github.com/ventas-crm/tracker/service"
	"github.com/ventas-crm/tracker/utils/jwt"
)

// Setup APIサーバーハンドラを構築します
func Setup(hub *hub.Hub, ss *service.Services, logger *zap.Logger, config *Config) *echo.Echo {
	logger = logger.Named("router")
	e := newEcho(logger, config)

	api := e.Group("/api")
	api.GET("/metrics", echoprometheus.NewHandler())
	api.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, http.StatusText(http.StatusOK)) })
	api.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version":  config.Version,
			"revision": config.Revision,
		})
	})
	api.GET("/ws", echo.WrapHandler(ss.WS))

	if signer, err := jwt.NewSigner(config.BackendSecret); err == nil {
		h := &backend.Handlers{
			Hub:          hub,
			Registry:     ss.Registry,
			Locations:    ss.LocationStore,
			WS:           ss.WS,
			Notification: ss.Notification,
			Signer:       signer,
			Logger:       logger.Named("backend"),
		}
		var mws []echo.MiddlewareFunc
		if config.Gzipped {
			mws = append(mws, middlewares.Gzip())
		}
		h.Setup(api, mws...)
	} else {
		logger.Info("backend secret is not set. internal api is disabled")
	}

	return e
}

func newEcho(logger *zap.Logger, config *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(logger)
	e.Binder = &extension.Binder{}

	// ミドルウェア設定
	e.Use(middlewares.ServerVersion(config.Version))
	e.Use(middlewares.RequestID())
	if config.AccessLogging {
		e.Use(middlewares.AccessLogging(logger.Named("access_log"), config.Development))
	}
	e.Use(middlewares.Recovery(logger))
	e.Use(extension.Wrap())
	e.Use(middlewares.RequestCounter())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		ExposeHeaders: []string{consts.HeaderVersion, echo.HeaderXRequestID},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:        3600,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tracker",
		Registerer: config.Registerer,
	}))

	return e
}
