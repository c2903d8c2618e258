package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// UserHandler serves the current user and the follow graph.
type UserHandler struct {
	authService   *service.AuthService
	relationships *service.RelationshipService
}

func NewUserHandler(authService *service.AuthService, relationships *service.RelationshipService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		relationships: relationships,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	users := router.Group("/users")
	{
		users.GET("/me", auth, h.Me)
		users.GET("/subscriptions", auth, h.Subscriptions)
		users.GET("/:id", h.GetUser)
		users.POST("/:id/subscribe", auth, h.Subscribe)
		users.DELETE("/:id/subscribe", auth, h.Unsubscribe)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	isSubscribed := false
	if viewer, ok := middleware.CurrentUserID(c); ok {
		isSubscribed, err = h.relationships.IsFollowing(c.Request.Context(), viewer, user.ID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, newUserResponse(*user, isSubscribed))
}

// Subscriptions lists the authors the current user follows, paginated
// with limit/offset.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	authors, total, err := h.relationships.ListFollows(
		c.Request.Context(), userID, intQuery(c, "limit"), intQuery(c, "offset"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results := make([]subscriptionResponse, len(authors))
	for i, author := range authors {
		results[i] = newSubscriptionResponse(author)
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": results})
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	h.toggleFollow(c, service.ActionAdd)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	h.toggleFollow(c, service.ActionRemove)
}

func (h *UserHandler) toggleFollow(c *gin.Context, action service.ToggleAction) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.relationships.ToggleFollow(c.Request.Context(), userID, authorID, action); err != nil {
		respondServiceError(c, err)
		return
	}

	if action == service.ActionRemove {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully", "id": authorID})
}
