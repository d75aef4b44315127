package database

import (
	"fmt"
	"log"

	"github.com/pageza/cookbook/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the users, recipes, ingredients and times tables if they are missing.
// Foreign keys from ingredients and times to recipes are created with ON DELETE CASCADE.
func AutoMigrate(db *gorm.DB) error {
	log.Printf("Ensuring schema using GORM auto-migration (%s)", db.Dialector.Name())
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
