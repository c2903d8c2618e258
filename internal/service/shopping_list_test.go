package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/shopping"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/validation"
)

func TestShoppingListService_BuildAndRender(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	user := testhelpers.CreateTestUser(t, db, "shopper")

	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	egg := testhelpers.CreateTestIngredient(t, db, "egg", "pcs")
	milk := testhelpers.CreateTestIngredient(t, db, "milk", "cup")
	tag := testhelpers.CreateTestTag(t, db, "dinner")

	recipes := NewRecipeService(db)
	pancakes, err := recipes.Create(ctx, author.ID, validation.RecipeSubmission{
		Name:        "Pancakes",
		CookingTime: 15,
		Ingredients: []validation.IngredientAmount{
			{ID: flour.ID, Amount: 200},
			{ID: egg.ID, Amount: 2},
		},
		TagIDs: []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)
	crepes, err := recipes.Create(ctx, author.ID, validation.RecipeSubmission{
		Name:        "Crepes",
		CookingTime: 20,
		Ingredients: []validation.IngredientAmount{
			{ID: flour.ID, Amount: 100},
			{ID: milk.ID, Amount: 1},
		},
		TagIDs: []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)

	relationships := NewRelationshipService(db)
	require.NoError(t, relationships.ToggleCart(ctx, user.ID, pancakes.ID, ActionAdd))
	require.NoError(t, relationships.ToggleCart(ctx, user.ID, crepes.ID, ActionAdd))

	svc := NewShoppingListService(db)

	items, err := svc.BuildShoppingList(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// Flour sums across both recipes and keeps its first-appearance slot.
	assert.Equal(t, shopping.LineItem{Name: "flour", Unit: "g", Amount: 300}, items[0])
	assert.Equal(t, shopping.LineItem{Name: "egg", Unit: "pcs", Amount: 2}, items[1])
	assert.Equal(t, shopping.LineItem{Name: "milk", Unit: "cup", Amount: 1}, items[2])

	text, err := svc.RenderShoppingList(ctx, user.ID)
	require.NoError(t, err)
	want := "Ваш список покупок:\n\n" +
		"flour, g -- 300\n" +
		"egg, pcs -- 2\n" +
		"milk, cup -- 1\n"
	assert.Equal(t, want, text)
}

func TestShoppingListService_EmptyCart(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "shopper")
	svc := NewShoppingListService(db)

	items, err := svc.BuildShoppingList(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	text, err := svc.RenderShoppingList(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, shopping.ListHeader, text)
}

// Only the requesting user's cart feeds the list.
func TestShoppingListService_ScopedToUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	other := testhelpers.CreateTestUser(t, db, "other")
	recipe := createRecipeForToggle(t, db, author)

	relationships := NewRelationshipService(db)
	require.NoError(t, relationships.ToggleCart(ctx, other.ID, recipe.ID, ActionAdd))

	items, err := NewShoppingListService(db).BuildShoppingList(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
