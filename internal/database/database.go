package database

import (
	"fmt"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and runs auto-migration.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminModel{},
		&models.LoginLogModel{},
		&models.PortfolioModel{},
		&models.ExperienceModel{},
		&models.EducationModel{},
		&models.SkillModel{},
	)
}

// Seed provisions the initial admin account and, when enabled, an empty
// published portfolio row to branch drafts from. It is idempotent: existing
// rows are never touched.
func Seed(db *gorm.DB, cfg *config.AppConfig) error {
	if cfg.Seed.AdminUsername != "" && cfg.Seed.AdminPassword != "" {
		var count int64
		if err := db.Model(&models.AdminModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := models.AdminModel{Username: cfg.Seed.AdminUsername, Password: string(hash)}
			if err := db.Create(&admin).Error; err != nil {
				return err
			}
		}
	}

	if cfg.Seed.Portfolio {
		var count int64
		if err := db.Model(&models.PortfolioModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			published := models.PortfolioModel{
				IsDraft:      false,
				ProfileName:  "Your Name",
				ProfileTitle: "Your Title",
				HeroTitle:    "Hello",
				HeroSubtitle: "Welcome to my portfolio",
				HeroStatus:   "Open to opportunities",
			}
			if err := db.Create(&published).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
