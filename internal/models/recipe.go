package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	AuthorID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string             `gorm:"size:200;not null" json:"name"`
	ImageURL    string             `gorm:"size:255" json:"image"`
	Text        string             `gorm:"type:text" json:"text"`
	CookingTime int                `gorm:"not null;check:chk_cooking_time,cooking_time >= 1" json:"cooking_time"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient says a recipe needs Amount units of one ingredient.
// The (recipe, ingredient) pair is unique; the whole set for a recipe is
// replaced atomically whenever the recipe's ingredient list changes.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"-"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_ingredient_in_recipe" json:"-"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_ingredient_in_recipe" json:"id"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount       int        `gorm:"not null;check:chk_amount,amount >= 1" json:"amount"`
	// Position preserves the submission order of the lines so exports
	// walk a recipe's ingredients deterministically.
	Position int `gorm:"not null;default:0" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// Favorite is a user's bookmark on a recipe. No payload, unique pair.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_favorite" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_favorite" json:"recipe_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// CartEntry puts a recipe into a user's shopping list. Unique pair.
type CartEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_recipe_in_cart" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_recipe_in_cart" json:"recipe_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

func (ce *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if ce.ID == uuid.Nil {
		ce.ID = uuid.New()
	}
	return nil
}
