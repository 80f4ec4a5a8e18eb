package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ventas-crm/tracker/repository"
	"github.com/ventas-crm/tracker/repository/gorm"
	"github.com/ventas-crm/tracker/service"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/utils/gormzap"
)

// serveCommand サーバー起動コマンド
func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve tracker API",
		Run: func(cmd *cobra.Command, args []string) {
			// Logger
			logger := getLogger()
			defer logger.Sync()

			logger.Info(fmt.Sprintf("tracker %s (revision %s)", Version, Revision))

			// Message Hub
			hub := hub.New()

			// Repository
			var repo repository.LocationRepository
			if c.useDatabase() {
				logger.Info("connecting database...")
				engine, err := c.getDatabase()
				if err != nil {
					logger.Fatal("failed to connect database", zap.Error(err))
				}
				engine.Logger = gormzap.New(logger.Named("gorm"))
				db, err := engine.DB()
				if err != nil {
					logger.Fatal("failed to get *sql.DB", zap.Error(err))
				}
				defer db.Close()
				logger.Info("database connection was established")

				logger.Info("setting up repository...")
				r, init, err := gorm.NewGormRepository(engine, logger, true)
				if err != nil {
					logger.Fatal("failed to initialize repository", zap.Error(err))
				}
				if init {
					logger.Info("database schema was initialized")
				}
				repo = r
				logger.Info("repository was set up")
			} else {
				repo = repository.NewNopLocationRepository()
				logger.Info("last locations are not persisted", zap.String("storage", c.Storage.Type))
			}

			// サーバー作成
			server, err := newServer(hub, repo, logger, &c)
			if err != nil {
				logger.Fatal("failed to create server", zap.Error(err))
			}

			// 最終位置情報の復元
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := location.RestoreStore(ctx, server.SS.LocationStore, repo)
			cancel()
			if err != nil {
				logger.Error("failed to restore last locations", zap.Error(err))
			} else if n > 0 {
				logger.Info("last locations were restored", zap.Int("count", n))
			}

			go func() {
				if err := server.Start(fmt.Sprintf(":%d", c.Port)); err != nil {
					logger.Info("shutting down the server")
				}
			}()

			logger.Info("tracker started")
			waitSIGINT()
			logger.Info("tracker shutting down...")

			ctx, cancel = context.WithTimeout(context.Background(), time.Duration(c.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("abnormal shutdown", zap.Error(err))
			}
			logger.Info("tracker shutdown")
		},
	}
}

// Server APIサーバー
type Server struct {
	L      *zap.Logger
	SS     *service.Services
	Router *echo.Echo
	Hub    *hub.Hub
}

// Start サーバーを起動します
func (s *Server) Start(address string) error {
	return s.Router.Start(address)
}

// Shutdown サーバーを停止します
//
// 接続を全て閉じてプレゼンスを解放してから, ハブを購読しているサービスを停止する
func (s *Server) Shutdown(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := s.Router.Shutdown(ctx)
		s.L.Info("Router shutdown")
		return err
	})
	eg.Go(func() error {
		err := s.SS.WS.Close()
		s.L.Info("WebSocket shutdown")
		return err
	})
	err := eg.Wait()

	s.SS.Notification.Close()
	s.L.Info("Notification shutdown")
	s.SS.LocationPersister.Close()
	s.L.Info("Location persister shutdown")
	s.SS.LocationStore.Close()
	s.L.Info("Location store shutdown")
	return err
}
