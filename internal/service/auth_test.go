package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestAuthService_RegisterAndValidate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, registerInput("newuser"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "newuser", claims.Username)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newuser@example.com", got.Email)
}

func TestAuthService_Register_Taken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput("taken"))
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, registerInput("taken"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	in := registerInput("taken")
	in.Email = "different@example.com"
	_, _, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "loginuser")

	token, got, err := svc.Login(ctx, user.Email, "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)

	_, _, err = svc.Login(ctx, user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Tokens signed with a different secret are rejected.
	otherSvc := NewAuthService(db, "other-secret")
	token, _, err := otherSvc.Register(context.Background(), registerInput("forged"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
