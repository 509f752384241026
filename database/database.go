package database

import (
	"fmt"
	"log"
	"os"

	"dealerhub-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=dealerhub port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.Supplier{},
		&models.Vehicle{},
		&models.SliderItem{},
	)
}

// CreateDefaultAdmin seeds the admin supplier account. It is the only
// account whose login requires a password.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminUID := os.Getenv("ADMIN_UID")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUID == "" {
		adminUID = "admin"
	}
	if adminEmail == "" {
		adminEmail = "admin@dealerhub.com"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existing models.Supplier
	result := db.Where("uid = ?", adminUID).First(&existing)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Supplier{
		UID:          adminUID,
		Email:        adminEmail,
		Name:         "Dealership Admin",
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin supplier created: %s", adminEmail)
	return nil
}
