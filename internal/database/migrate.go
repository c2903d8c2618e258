package database

import (
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// Migrate creates or updates the schema for every domain entity.
// Reference tables go first so the join tables can reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartEntry{},
		&models.Follow{},
	)
}
