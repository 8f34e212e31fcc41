package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	moderncSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/fotracker/fotracker/internal/config"
	"github.com/fotracker/fotracker/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DB,
	)

	return open(postgres.Open(dsn))
}

func OpenPostgresWithURL(databaseURL string) (*gorm.DB, error) {
	return open(postgres.Open(databaseURL))
}

// OpenSQLite backs the store with a single local database file via the
// cgo-free sqlite driver, for running the tracker without any server.
func OpenSQLite(path string) (*gorm.DB, error) {
	gormDB, err := open(&moderncSqlite.Dialector{
		DSN:        path,
		DriverName: "sqlite",
	})
	if err != nil {
		return nil, err
	}

	gormDB.Exec("PRAGMA foreign_keys = ON;")

	return gormDB, nil
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(gormDB); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return gormDB, nil
}
