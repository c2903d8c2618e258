package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/validation"
)

// respondServiceError maps service-layer errors onto HTTP statuses:
// validation and conflict errors are 400 with enough detail to correct
// and resubmit, missing references are 404, ownership violations 403.
func respondServiceError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrTagNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
