package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
)

func TestReferenceService_ListIngredients(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewReferenceService(db, nil)
	ctx := context.Background()

	testhelpers.CreateTestIngredient(t, db, "salt", "g")
	testhelpers.CreateTestIngredient(t, db, "salmon", "g")
	testhelpers.CreateTestIngredient(t, db, "pepper", "g")

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "pepper", all[0].Name)

	// The name filter matches prefixes, not substrings.
	matched, err := svc.ListIngredients(ctx, "sal")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "salmon", matched[0].Name)
	assert.Equal(t, "salt", matched[1].Name)

	matched, err = svc.ListIngredients(ctx, "epper")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestReferenceService_GetIngredient(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewReferenceService(db, nil)
	ctx := context.Background()

	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")

	got, err := svc.GetIngredient(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, "salt", got.Name)

	_, err = svc.GetIngredient(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestReferenceService_Tags(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewReferenceService(db, nil)
	ctx := context.Background()

	dinner := testhelpers.CreateTestTag(t, db, "dinner")
	testhelpers.CreateTestTag(t, db, "breakfast")

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "dinner", tags[1].Name)

	got, err := svc.GetTag(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Equal(t, "dinner", got.Slug)

	_, err = svc.GetTag(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTagNotFound)
}
