package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tallercr/workshop-api/models"
)

// Migrate runs AutoMigrate only when explicitly called.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Quote{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
