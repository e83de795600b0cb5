package db

import (
	"fmt" // Error wrapping

	"health_guardian/internal/config" // Connection settings
	"health_guardian/internal/domain" // Importing domain models
	"health_guardian/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // Postgres driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// Dialector picks the GORM driver for the configured database
func Dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == "postgres" {
		return postgres.Open(cfg.DSN())
	}
	return mysql.Open(cfg.DSN())
}

// Open connects to the configured database with duplicate-key errors translated
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(cfg), &gorm.Config{TranslateError: true}) // Open a connection to the database
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(&domain.User{}, &domain.Donor{}, &domain.Disease{}, &domain.Alert{}, &domain.Notification{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates the first admin account when none exists
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64 // Existing admins
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}
	if password == "" {
		logrus.Warn("No admin account exists and ADMIN_PASSWORD is empty; skipping admin seed")
		return nil
	}
	hash, err := utils.HashPassword(password) // Hash the password
	if err != nil {
		return err
	}
	admin := domain.User{Name: "Admin User", Email: email, Password: hash, Role: domain.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": admin.ID, "email": email}).Info("Admin account seeded")
	return nil
}
