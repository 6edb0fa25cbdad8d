package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

// Migrate applies schema migrations for all application models. On
// postgres the pgvector extension is required for the embedding column.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Recipe{},
		&models.RecipeFavorite{},
	)
}
