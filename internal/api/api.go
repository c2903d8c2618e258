package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// SetupAPI wires services and handlers onto /api/v1. The redis client
// and S3 config may be nil; rate limiting and image upload degrade to
// disabled.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		recipeService := service.NewRecipeService(db)
		relationshipService := service.NewRelationshipService(db)
		shoppingListService := service.NewShoppingListService(db)
		referenceService := service.NewReferenceService(db, redisClient)

		var imageService *service.ImageService
		if s3Config != nil {
			imageService = service.NewImageService(s3Config)
		}
		var limiter *middleware.RateLimiter
		if redisClient != nil {
			limiter = middleware.NewRecipeMutationRateLimiter(redisClient)
		}

		NewAuthHandler(authService).RegisterRoutes(v1)
		NewUserHandler(authService, relationshipService).RegisterRoutes(v1)
		NewReferenceHandler(referenceService).RegisterRoutes(v1)
		NewRecipeHandler(recipeService, relationshipService, shoppingListService,
			imageService, authService, limiter).RegisterRoutes(v1)
	}
}
