package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/shopping"
)

// ShoppingListService exports a user's cart as an aggregated list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// BuildShoppingList joins the user's cart entries to their recipes'
// ingredient lines and aggregates by (name, unit). Rows come back in
// cart order, then line order within each recipe, so the aggregate's
// first-appearance ordering is stable. An empty cart yields an empty
// slice.
func (s *ShoppingListService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]shopping.LineItem, error) {
	var lines []shopping.IngredientLine
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, recipe_ingredients.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.created_at asc, recipe_ingredients.position asc").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return shopping.Aggregate(lines), nil
}

// RenderShoppingList returns the plain-text attachment body for the
// user's cart.
func (s *ShoppingListService) RenderShoppingList(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := s.BuildShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}
	return shopping.Render(items), nil
}
