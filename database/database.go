package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database named by database.driver: postgres (default) or
// sqlite, where database.path is a file path or ":memory:".
func New(config *viper.Viper) *gorm.DB {
	gormConfig := &gorm.Config{}
	if !config.GetBool("database.log_queries") {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	var dialector gorm.Dialector
	switch config.GetString("database.driver") {
	case "sqlite":
		path := config.GetString("database.path")
		if path == "" {
			path = "tutorly.db"
		}
		dialector = sqlite.Open(path)
	case "postgres", "":
		dialector = postgres.Open(postgresDSN(config))
	default:
		panic(fmt.Errorf("unsupported database driver: %s", config.GetString("database.driver")))
	}

	db, err := gorm.Open(dialector, gormConfig)

	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	// Every connection to ":memory:" is a separate database.
	if config.GetString("database.driver") == "sqlite" && config.GetString("database.path") == ":memory:" {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	return db
}

func postgresDSN(config *viper.Viper) string {
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}
	port := config.GetInt("database.port")
	if port == 0 {
		port = 5432
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		config.GetString("database.host"),
		config.GetString("database.username"),
		config.GetString("database.password"),
		config.GetString("database.dbname"),
		port,
		sslmode,
		timezone,
	)
}
