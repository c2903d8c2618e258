package testhelpers

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// CreateTestUser inserts a user whose email and password derive from the
// username. The password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// CreateTestIngredient inserts one reference ingredient.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

// CreateTestTag inserts one reference tag named after the slug. The
// color is derived from the slug to keep it unique across fixtures.
func CreateTestTag(t *testing.T, db *gorm.DB, slug string) models.Tag {
	t.Helper()

	h := fnv.New32a()
	h.Write([]byte(slug))
	tag := models.Tag{
		Name:  slug,
		Slug:  slug,
		Color: fmt.Sprintf("#%06x", h.Sum32()&0xffffff),
	}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}
