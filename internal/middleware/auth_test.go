package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/foodgram/backend/internal/service"
)

type stubValidator struct {
	claims *service.TokenClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*service.TokenClaims, error) {
	return v.claims, v.err
}

func authTestRouter(validator TokenValidator, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mw := AuthMiddleware(validator)
	if optional {
		mw = OptionalAuthMiddleware(validator)
	}
	router.GET("/probe", mw, func(c *gin.Context) {
		if id, ok := CurrentUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})
	return router
}

func probe(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := stubValidator{claims: &service.TokenClaims{UserID: userID, Username: "reader"}}
	invalid := stubValidator{err: service.ErrInvalidToken}

	w := probe(authTestRouter(valid, false), "Bearer token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	w = probe(authTestRouter(valid, false), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = probe(authTestRouter(valid, false), "NotBearer token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = probe(authTestRouter(invalid, false), "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := stubValidator{claims: &service.TokenClaims{UserID: userID, Username: "reader"}}
	invalid := stubValidator{err: errors.New("bad token")}

	w := probe(authTestRouter(valid, true), "Bearer token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	// Anonymous and broken tokens both pass through without a user.
	w = probe(authTestRouter(valid, true), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), userID.String())

	w = probe(authTestRouter(invalid, true), "Bearer token")
	assert.Equal(t, http.StatusOK, w.Code)
}
