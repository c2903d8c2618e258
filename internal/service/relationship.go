package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// ToggleAction selects the direction of a toggle operation.
type ToggleAction string

const (
	ActionAdd    ToggleAction = "add"
	ActionRemove ToggleAction = "remove"
)

// RelationshipService owns the favorite, cart-entry and follow pairs.
// Adds rely on the storage unique constraints to stay single under
// race; the existence pre-checks only produce friendlier errors.
type RelationshipService struct {
	db *gorm.DB
}

func NewRelationshipService(db *gorm.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

// ToggleFavorite adds or removes a (user, recipe) bookmark.
func (s *RelationshipService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID, action ToggleAction) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if action == ActionAdd {
		var count int64
		if err := db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFavorited
		}
		err := db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFavorited
		}
		return err
	}

	res := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}

// ToggleCart adds or removes a (user, recipe) shopping-cart entry.
func (s *RelationshipService) ToggleCart(ctx context.Context, userID, recipeID uuid.UUID, action ToggleAction) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if action == ActionAdd {
		var count int64
		if err := db.Model(&models.CartEntry{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInCart
		}
		err := db.Create(&models.CartEntry{UserID: userID, RecipeID: recipeID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInCart
		}
		return err
	}

	res := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.CartEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

// ToggleFollow adds or removes a (user, author) subscription. The
// self-follow check runs before any existence check.
func (s *RelationshipService) ToggleFollow(ctx context.Context, userID, authorID uuid.UUID, action ToggleAction) error {
	if userID == authorID {
		return ErrSelfFollow
	}

	db := s.db.WithContext(ctx)
	var author models.User
	if err := db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if action == ActionAdd {
		var count int64
		if err := db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", userID, authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}
		err := db.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}

	res := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// ListFollows returns the authors the user follows, oldest subscription
// first, with the authors' recipes preloaded. The second return value is
// the total subscription count for pagination.
func (s *RelationshipService) ListFollows(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := db.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at asc").
		Limit(limit).
		Offset(offset).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// IsFollowing reports whether user subscribes to author.
func (s *RelationshipService) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (s *RelationshipService) recipeExists(ctx context.Context, recipeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
