package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/service"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*service.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, validator)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the current user when a valid token is
// present but lets anonymous requests through. Read endpoints use it so
// per-viewer flags work without requiring login.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, errMsg := claimsFromRequest(c, validator); errMsg == "" {
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by the auth
// middleware, or false for anonymous requests.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func claimsFromRequest(c *gin.Context, validator TokenValidator) (*service.TokenClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, err.Error()
	}
	return claims, ""
}
