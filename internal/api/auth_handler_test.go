package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerUser(t, router, "taken")

	w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "someoneelse",
		"email":    "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_RejectsBadPayload(t *testing.T) {
	router, _ := setupTestRouter(t)

	// Short password fails binding before any service call.
	w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "newuser",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerUser(t, router, "loginuser")

	w := performRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "loginuser@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = performRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "loginuser@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
