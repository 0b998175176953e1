// database/bootstrap.go
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite" // CGO-free driver
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"plataform/config"
	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/logger"
)

// Open connects to the configured engine and migrates the mock backend tables.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBEngine {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
		logger.Infof("database: postgres")
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
		logger.Infof("database: sqlite %s", cfg.DBPath)
	default:
		return nil, apperr.Wrapf(apperr.ErrConfiguration, "unsupported DB_ENGINE %q", cfg.DBEngine)
	}

	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			logger.WithFields(logrus.Fields{"component": "gorm"}),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, apperr.Wrapf(apperr.ErrDatabase, "open %s: %v", cfg.DBEngine, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperr.Wrapf(apperr.ErrDatabase, "pool: %v", err)
	}
	if cfg.DBEngine != "postgres" {
		// sqlite serializes writers; a single connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.PropertyInfo{},
		&entities.Laboratory{},
		&entities.Plataform{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
