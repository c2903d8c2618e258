package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/validation"
)

type ingredientAmountRequest struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

type recipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Text        string                    `json:"text"`
	Image       string                    `json:"image"`
	CookingTime int                       `json:"cooking_time"`
	Ingredients []ingredientAmountRequest `json:"ingredients"`
	Tags        []uuid.UUID               `json:"tags"`
}

func (r recipeRequest) toSubmission(imageURL string) validation.RecipeSubmission {
	ingredients := make([]validation.IngredientAmount, len(r.Ingredients))
	for i, item := range r.Ingredients {
		ingredients[i] = validation.IngredientAmount{ID: item.ID, Amount: item.Amount}
	}
	return validation.RecipeSubmission{
		Name:        r.Name,
		Text:        r.Text,
		ImageURL:    imageURL,
		CookingTime: r.CookingTime,
		Ingredients: ingredients,
		TagIDs:      r.Tags,
	}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func newUserResponse(user models.User, isSubscribed bool) userResponse {
	return userResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

type recipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type recipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           userResponse               `json:"author"`
	Ingredients      []recipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	CreatedAt        time.Time                  `json:"created_at"`
}

func newRecipeResponse(recipe models.Recipe, flags service.RecipeFlags) recipeResponse {
	ingredients := make([]recipeIngredientResponse, len(recipe.Ingredients))
	for i, line := range recipe.Ingredients {
		ingredients[i] = recipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		}
	}
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return recipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(recipe.Author, false),
		Ingredients:      ingredients,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}
}

type subscriptionResponse struct {
	userResponse
	Recipes      []recipeSummary `json:"recipes"`
	RecipesCount int             `json:"recipes_count"`
}

type recipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func newSubscriptionResponse(author models.User) subscriptionResponse {
	recipes := make([]recipeSummary, len(author.Recipes))
	for i, recipe := range author.Recipes {
		recipes[i] = recipeSummary{
			ID:          recipe.ID,
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		}
	}
	return subscriptionResponse{
		userResponse: newUserResponse(author, true),
		Recipes:      recipes,
		RecipesCount: len(recipes),
	}
}
