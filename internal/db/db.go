package db

import (
	"miniblog/internal/config"
	"miniblog/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the configured store and creates the schema if absent.
// DATABASE_URL selects postgres; without it the app runs on a local sqlite
// file, which is also what the tests use with ":memory:".
func Open(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	database, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	logger.Info("database initialized",
		zap.Bool("postgres", cfg.DatabaseURL != ""))
	return database, nil
}

// Migrate creates or updates the tables for the four entities.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
	)
}
