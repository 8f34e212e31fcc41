package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fotracker/fotracker/internal/api"
	"github.com/fotracker/fotracker/internal/config"
	"github.com/fotracker/fotracker/internal/db"
	"github.com/fotracker/fotracker/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	gormDB, err := openPrimaryDB(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	// A sqlite path alongside a postgres primary is the migration
	// source for users moving local data into the hosted store.
	var localDB *gorm.DB
	if conf.Storage != nil && conf.Storage.Driver == "postgres" && conf.Storage.SQLitePath != "" {
		localDB, err = db.OpenSQLite(conf.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open migration source -> %w", err)
		}
	}

	s := api.NewServer(conf, gormDB, localDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openPrimaryDB(conf *config.AppConfig) (*gorm.DB, error) {
	if conf.Storage != nil && conf.Storage.Driver == "sqlite" {
		return db.OpenSQLite(conf.Storage.SQLitePath)
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.OpenPostgres(conf.Postgres)
}
