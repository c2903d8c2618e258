package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

type RecipeHandler struct {
	recipes       *service.RecipeService
	relationships *service.RelationshipService
	shoppingLists *service.ShoppingListService
	images        *service.ImageService
	authService   *service.AuthService
	rateLimit     gin.HandlerFunc
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	relationships *service.RelationshipService,
	shoppingLists *service.ShoppingListService,
	images *service.ImageService,
	authService *service.AuthService,
	limiter *middleware.RateLimiter,
) *RecipeHandler {
	rateLimit := func(c *gin.Context) { c.Next() }
	if limiter != nil {
		rateLimit = limiter.RateLimitMiddleware()
	}
	return &RecipeHandler{
		recipes:       recipes,
		relationships: relationships,
		shoppingLists: shoppingLists,
		images:        images,
		authService:   authService,
		rateLimit:     rateLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	optional := middleware.OptionalAuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", auth, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", auth, h.rateLimit, h.CreateRecipe)
		recipes.PATCH("/:id", auth, h.rateLimit, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.rateLimit, h.DeleteRecipe)
		recipes.POST("/:id/favorite", auth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", auth, h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", auth, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", auth, h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Limit:  intQuery(c, "limit"),
		Offset: intQuery(c, "offset"),
	}

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.Author = &authorID
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		filter.TagSlugs = tags
	} else if tags := c.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}

	viewer := currentUserPtr(c)
	if c.Query("is_favorited") == "1" && viewer != nil {
		filter.FavoritedBy = viewer
	}
	if c.Query("is_in_shopping_cart") == "1" && viewer != nil {
		filter.InCartOf = viewer
	}

	recipes, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ids := make([]uuid.UUID, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
	}
	flags, err := h.recipes.Flags(c.Request.Context(), viewer, ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results := make([]recipeResponse, len(recipes))
	for i, recipe := range recipes {
		results[i] = newRecipeResponse(recipe, flags[recipe.ID])
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	viewer := currentUserPtr(c)
	flags, err := h.recipes.Flags(c.Request.Context(), viewer, []uuid.UUID{recipe.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(*recipe, flags[recipe.ID]))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	imageURL, ok := h.resolveImage(c, req.Image)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, req.toSubmission(imageURL))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRecipeResponse(*recipe, service.RecipeFlags{}))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	imageURL, resolved := h.resolveImage(c, req.Image)
	if !resolved {
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, req.toSubmission(imageURL))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	viewer := currentUserPtr(c)
	flags, err := h.recipes.Flags(c.Request.Context(), viewer, []uuid.UUID{recipe.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(*recipe, flags[recipe.ID]))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.toggle(c, service.ActionAdd, h.relationships.ToggleFavorite, "Recipe added to favorites")
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.toggle(c, service.ActionRemove, h.relationships.ToggleFavorite, "Recipe removed from favorites")
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggle(c, service.ActionAdd, h.relationships.ToggleCart, "Recipe added to shopping cart")
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.toggle(c, service.ActionRemove, h.relationships.ToggleCart, "Recipe removed from shopping cart")
}

// DownloadShoppingCart streams the aggregated shopping list as a plain
// text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	text, err := h.shoppingLists.RenderShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=shopping_list.txt`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *RecipeHandler) toggle(
	c *gin.Context,
	action service.ToggleAction,
	fn func(ctx context.Context, userID, recipeID uuid.UUID, action service.ToggleAction) error,
	message string,
) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := fn(c.Request.Context(), userID, id, action); err != nil {
		respondServiceError(c, err)
		return
	}

	if action == service.ActionRemove {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "id": id})
}

// resolveImage uploads inline base64 payloads to the image store and
// passes URLs through untouched. Returns false after writing an error
// response.
func (h *RecipeHandler) resolveImage(c *gin.Context, image string) (string, bool) {
	if !strings.HasPrefix(image, "data:") {
		return image, true
	}
	if h.images == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image upload is not configured"})
		return "", false
	}
	url, err := h.images.StoreBase64Image(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return url, true
}

func currentUserPtr(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.CurrentUserID(c); ok {
		return &id
	}
	return nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
