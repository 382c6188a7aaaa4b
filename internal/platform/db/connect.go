package db

import (
	"fmt"
	"os"

	"github.com/almatbakh/staff-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database described by cfg. Credentials come
// from DB_USERNAME/DB_PASSWORD when set, otherwise from the Secrets Manager
// entry named by DB_SECRET_ID.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	sslMode := ""
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}
	username, password, err := retrieveCredentials(cfg.DBSecretID)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.DBHost, username, password, cfg.DBName, cfg.DBPort, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
