package service

import "errors"

// Conflict errors for the toggle operations. The pre-existence check is
// only a courtesy; the storage unique constraints are the real guard, so
// a duplicate insert under race maps back to the same error.
var (
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")
	ErrAlreadyFollowing = errors.New("already following this author")
	ErrNotFollowing     = errors.New("not following this author")
)

// Permission errors.
var (
	ErrNotOwner   = errors.New("only the author may modify this recipe")
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// Not-found errors.
var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")
)

// Auth errors.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
