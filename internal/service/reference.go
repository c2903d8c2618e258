package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

const (
	tagCacheKey = "reference:tags"
	tagCacheTTL = 10 * time.Minute
)

// ReferenceService serves the read-only ingredient and tag reference
// data. The tag list is cached in Redis since it changes only when
// reference data is reseeded; the cache is best-effort and a nil client
// disables it.
type ReferenceService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewReferenceService(db *gorm.DB, redisClient *redis.Client) *ReferenceService {
	return &ReferenceService{db: db, redis: redisClient}
}

// ListIngredients returns ingredients ordered by name, optionally
// narrowed to names starting with prefix.
func (s *ReferenceService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient returns one ingredient by id.
func (s *ReferenceService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListTags returns all tags, from cache when possible.
func (s *ReferenceService) ListTags(ctx context.Context) ([]models.Tag, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, tagCacheKey).Bytes()
		if err == nil {
			var tags []models.Tag
			if err := json.Unmarshal(cached, &tags); err == nil {
				return tags, nil
			}
		} else if err != redis.Nil {
			log.Printf("tag cache read failed: %v", err)
		}
	}

	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(tags); err == nil {
			if err := s.redis.Set(ctx, tagCacheKey, payload, tagCacheTTL).Err(); err != nil {
				log.Printf("tag cache write failed: %v", err)
			}
		}
	}
	return tags, nil
}

// GetTag returns one tag by id.
func (s *ReferenceService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
