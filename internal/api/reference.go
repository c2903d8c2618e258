package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/service"
)

// ReferenceHandler serves the read-only ingredient and tag catalogs.
type ReferenceHandler struct {
	reference *service.ReferenceService
}

func NewReferenceHandler(reference *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
}

func (h *ReferenceHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.reference.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *ReferenceHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}
	ingredient, err := h.reference.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.reference.ListTags(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *ReferenceHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}
	tag, err := h.reference.GetTag(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
