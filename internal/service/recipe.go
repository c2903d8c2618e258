package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/validation"
)

// DefaultPageSize is applied when a list request carries no limit.
const DefaultPageSize = 6

// RecipeService orchestrates recipe reads and author-only mutations.
// Every multi-row mutation runs in one transaction so a concurrent
// reader never sees a recipe with tags but no ingredient lines.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter narrows List results. Zero-valued fields apply no filter;
// the filters compose independently.
type RecipeFilter struct {
	Author      *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Limit       int
	Offset      int
}

// List returns recipes newest-first with tags, ingredient lines and
// author preloaded.
func (s *RecipeService) List(ctx context.Context, f RecipeFilter) ([]models.Recipe, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.Author != nil {
		query = query.Where("recipes.author_id = ?", *f.Author)
	}
	if len(f.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs).
			Distinct("recipes.*")
	}
	if f.FavoritedBy != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *f.FavoritedBy)
	}
	if f.InCartOf != nil {
		query = query.
			Joins("JOIN cart_entries ON cart_entries.recipe_id = recipes.id").
			Where("cart_entries.user_id = ?", *f.InCartOf)
	}

	var recipes []models.Recipe
	err := query.
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.created_at desc").
		Limit(limit).
		Offset(f.Offset).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns one recipe with associations preloaded.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create validates the submission and persists the recipe, its tag
// associations and its ingredient lines as one unit.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, sub validation.RecipeSubmission) (*models.Recipe, error) {
	ref, err := s.loadReferenceSet(ctx, sub)
	if err != nil {
		return nil, err
	}
	validated, err := validation.ValidateRecipeSubmission(sub, ref)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        validated.Name,
		ImageURL:    validated.ImageURL,
		Text:        validated.Text,
		CookingTime: validated.CookingTime,
		Tags:        validated.Tags,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Omit("Tags.*") links existing tags without rewriting the
		// reference rows.
		if err := tx.Omit("Tags.*").Create(&recipe).Error; err != nil {
			return err
		}
		lines := ingredientLines(recipe.ID, validated.Ingredients)
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Update re-validates the full replacement set and swaps the recipe's
// tag and ingredient associations wholesale. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, sub validation.RecipeSubmission) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotOwner
	}

	ref, err := s.loadReferenceSet(ctx, sub)
	if err != nil {
		return nil, err
	}
	validated, err := validation.ValidateRecipeSubmission(sub, ref)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         validated.Name,
			"text":         validated.Text,
			"cooking_time": validated.CookingTime,
		}
		if validated.ImageURL != "" {
			updates["image_url"] = validated.ImageURL
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(validated.Tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		lines := ingredientLines(recipe.ID, validated.Ingredients)
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Delete removes the recipe and everything hanging off it: ingredient
// lines, tag links, favorites and cart entries. Only the author may
// delete.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// RecipeFlags carries the per-viewer state of one recipe.
type RecipeFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}

// Flags fetches favorite and cart membership for a batch of recipes in
// two queries. A nil viewer gets all-false flags.
func (s *RecipeService) Flags(ctx context.Context, viewer *uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]RecipeFlags, error) {
	flags := make(map[uuid.UUID]RecipeFlags, len(recipeIDs))
	for _, id := range recipeIDs {
		flags[id] = RecipeFlags{}
	}
	if viewer == nil || len(recipeIDs) == 0 {
		return flags, nil
	}

	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *viewer, recipeIDs).
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	for _, fav := range favorites {
		f := flags[fav.RecipeID]
		f.IsFavorited = true
		flags[fav.RecipeID] = f
	}

	var entries []models.CartEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *viewer, recipeIDs).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, entry := range entries {
		f := flags[entry.RecipeID]
		f.IsInShoppingCart = true
		flags[entry.RecipeID] = f
	}

	return flags, nil
}

// loadReferenceSet fetches the ingredients and tags named by the
// submission so validation can resolve them without touching storage
// itself. Missing ids simply stay unresolved and fall out as
// unknown_ingredient / unknown_tag.
func (s *RecipeService) loadReferenceSet(ctx context.Context, sub validation.RecipeSubmission) (validation.ReferenceSet, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(sub.Ingredients))
	for _, item := range sub.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	var ingredients []models.Ingredient
	if len(ingredientIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", ingredientIDs).Find(&ingredients).Error; err != nil {
			return nil, err
		}
	}

	var tags []models.Tag
	if len(sub.TagIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", sub.TagIDs).Find(&tags).Error; err != nil {
			return nil, err
		}
	}

	return validation.NewReferenceSet(ingredients, tags), nil
}

func ingredientLines(recipeID uuid.UUID, resolved []validation.ResolvedIngredient) []models.RecipeIngredient {
	lines := make([]models.RecipeIngredient, len(resolved))
	for i, item := range resolved {
		lines[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.Ingredient.ID,
			Amount:       item.Amount,
			Position:     i,
		}
	}
	return lines
}
