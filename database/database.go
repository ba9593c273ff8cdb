package database

import (
	"fmt"
	"log/slog"

	"staffms/internal/domain/billing"
	"staffms/internal/domain/media"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects to Postgres and migrates every domain model.
func InitDB(dsn string, log *slog.Logger) error {
	if dsn == "" {
		return fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&organizations.Organization{},
		&users.User{},
		&users.VerificationToken{},
		&plans.StripePrice{},
		&billing.Payment{},
		&media.File{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	DB = db
	log.Info("database connected and migrated")
	return nil
}
