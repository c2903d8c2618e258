package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
)

func testReferenceSet() (ReferenceSet, models.Ingredient, models.Tag) {
	flour := models.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"}
	breakfast := models.Tag{ID: uuid.New(), Name: "breakfast", Slug: "breakfast", Color: "#ff0000"}
	return NewReferenceSet([]models.Ingredient{flour}, []models.Tag{breakfast}), flour, breakfast
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	return verr
}

func TestValidateRecipeSubmission_Valid(t *testing.T) {
	ref, flour, breakfast := testReferenceSet()

	validated, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 15,
		Ingredients: []IngredientAmount{{ID: flour.ID, Amount: 300}},
		TagIDs:      []uuid.UUID{breakfast.ID},
	}, ref)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", validated.Name)
	require.Len(t, validated.Ingredients, 1)
	assert.Equal(t, flour.ID, validated.Ingredients[0].Ingredient.ID)
	assert.Equal(t, 300, validated.Ingredients[0].Amount)
	require.Len(t, validated.Tags, 1)
	assert.Equal(t, breakfast.ID, validated.Tags[0].ID)
}

func TestValidateRecipeSubmission_CookingTime(t *testing.T) {
	ref, flour, breakfast := testReferenceSet()

	for _, cookingTime := range []int{0, -5} {
		_, err := ValidateRecipeSubmission(RecipeSubmission{
			Name:        "Pancakes",
			CookingTime: cookingTime,
			Ingredients: []IngredientAmount{{ID: flour.ID, Amount: 1}},
			TagIDs:      []uuid.UUID{breakfast.ID},
		}, ref)
		verr := asValidationError(t, err)
		assert.True(t, verr.Has(FieldCookingTime, CodeInvalidCookingTime))
	}
}

func TestValidateRecipeSubmission_EmptyLists(t *testing.T) {
	ref, _, _ := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
	}, ref)
	verr := asValidationError(t, err)

	assert.True(t, verr.Has(FieldIngredients, CodeEmptyIngredientList))
	assert.True(t, verr.Has(FieldTags, CodeEmptyTagList))
}

func TestValidateRecipeSubmission_DuplicateIngredient(t *testing.T) {
	ref, flour, breakfast := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
		Ingredients: []IngredientAmount{
			{ID: flour.ID, Amount: 100},
			{ID: flour.ID, Amount: 200},
		},
		TagIDs: []uuid.UUID{breakfast.ID},
	}, ref)
	verr := asValidationError(t, err)
	assert.True(t, verr.Has(FieldIngredients, CodeDuplicateIngredient))
}

func TestValidateRecipeSubmission_UnknownReferences(t *testing.T) {
	ref, _, _ := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
		Ingredients: []IngredientAmount{{ID: uuid.New(), Amount: 100}},
		TagIDs:      []uuid.UUID{uuid.New()},
	}, ref)
	verr := asValidationError(t, err)

	assert.True(t, verr.Has(FieldIngredients, CodeUnknownIngredient))
	assert.True(t, verr.Has(FieldTags, CodeUnknownTag))
}

func TestValidateRecipeSubmission_NonPositiveAmount(t *testing.T) {
	ref, flour, breakfast := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
		Ingredients: []IngredientAmount{{ID: flour.ID, Amount: 0}},
		TagIDs:      []uuid.UUID{breakfast.ID},
	}, ref)
	verr := asValidationError(t, err)
	assert.True(t, verr.Has(FieldIngredients, CodeNonPositiveAmount))
}

func TestValidateRecipeSubmission_DuplicateTag(t *testing.T) {
	ref, flour, breakfast := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
		Ingredients: []IngredientAmount{{ID: flour.ID, Amount: 100}},
		TagIDs:      []uuid.UUID{breakfast.ID, breakfast.ID},
	}, ref)
	verr := asValidationError(t, err)
	assert.True(t, verr.Has(FieldTags, CodeDuplicateTag))
}

// Violations on independent fields are all reported at once.
func TestValidateRecipeSubmission_AccumulatesViolations(t *testing.T) {
	ref, flour, _ := testReferenceSet()

	_, err := ValidateRecipeSubmission(RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 0,
		Ingredients: []IngredientAmount{
			{ID: flour.ID, Amount: -1},
			{ID: uuid.New(), Amount: 5},
		},
	}, ref)
	verr := asValidationError(t, err)

	assert.True(t, verr.Has(FieldCookingTime, CodeInvalidCookingTime))
	assert.True(t, verr.Has(FieldIngredients, CodeNonPositiveAmount))
	assert.True(t, verr.Has(FieldIngredients, CodeUnknownIngredient))
	assert.True(t, verr.Has(FieldTags, CodeEmptyTagList))
	assert.Len(t, verr.Fields, 3)
}
