package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open establishes a fresh trade-log connection and returns it together with
// a release function. Every fetch operation acquires its own connection and
// releases it when done; there is no ambient shared handle and no pooling
// across requests.
func Open() (*gorm.DB, func(), error) {
	config := GetConfig()

	var dialector gorm.Dialector
	switch config.Driver {
	case "sqlite":
		dialector = sqlite.Open(config.DSN())
	default:
		dialector = postgres.Open(config.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to trade-log store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping trade-log store: %w", err)
	}

	release := func() {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Warn("[database] failed to close trade-log connection")
		}
	}

	return db, release, nil
}

// Probe opens a connection, checks that the trade_log table is reachable and
// logs the row count. Used at startup for an early warning; a failure is not
// fatal because the chat pipeline degrades to formatted error messages.
func Probe() error {
	db, release, err := Open()
	if err != nil {
		return err
	}
	defer release()

	var count int64
	if err := db.Table("trade_log").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to access trade_log: %w", err)
	}

	logrus.WithFields(map[string]interface{}{"count": count}).
		Info("[database] trade_log reachable")

	return nil
}
