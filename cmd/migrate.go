package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/migration"
	"github.com/ventas-crm/tracker/utils/gormzap"
)

// migrateCommand データベースマイグレーションコマンド
func migrateCommand() *cobra.Command {
	var dropDB bool

	cmd := cobra.Command{
		Use:   "migrate",
		Short: "Execute database schema migration only",
		Run: func(cmd *cobra.Command, args []string) {
			logger := getCLILogger()
			defer logger.Sync()

			if err := migration.CreateDatabasesIfNotExists(c.getDSN(""), c.MariaDB.Database); err != nil {
				logger.Fatal("failed to create database", zap.Error(err))
			}
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

			if dropDB {
				logger.Info("resetting database...")
				if err := migration.DropAll(engine); err != nil {
					logger.Fatal("failed to reset database", zap.Error(err))
				}
				logger.Info("all tables have been deleted")
			}
			logger.Info("migrating database...")
			init, err := migration.Migrate(engine)
			if err != nil {
				logger.Fatal("failed to migrate", zap.Error(err))
			}
			if init {
				logger.Info("database schema was initialized")
			}
			logger.Info("migration finished")
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dropDB, "reset", false, "whether to truncate database (drop all tables)")

	return &cmd
}
