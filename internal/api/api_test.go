package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

// setupTestRouter wires the full API against an in-memory database with
// redis and S3 disabled.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)
	router := gin.New()
	SetupAPI(router, db, nil, nil, "test-secret")
	return router, db
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser creates an account over the API and returns its token and id.
func registerUser(t *testing.T, router *gin.Engine, username string) (string, uuid.UUID) {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username":   username,
		"email":      username + "@example.com",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, _ := body["user"].(map[string]interface{})
	id, err := uuid.Parse(user["id"].(string))
	require.NoError(t, err)
	return token, id
}

type referenceFixtures struct {
	flour models.Ingredient
	egg   models.Ingredient
	tag   models.Tag
}

func seedReference(t *testing.T, db *gorm.DB) referenceFixtures {
	t.Helper()
	return referenceFixtures{
		flour: testhelpers.CreateTestIngredient(t, db, "flour", "g"),
		egg:   testhelpers.CreateTestIngredient(t, db, "egg", "pcs"),
		tag:   testhelpers.CreateTestTag(t, db, "dinner"),
	}
}

func recipePayload(ref referenceFixtures) gin.H {
	return gin.H{
		"name":         "Pancakes",
		"text":         "Mix and fry",
		"image":        "https://example.com/pancakes.png",
		"cooking_time": 15,
		"ingredients": []gin.H{
			{"id": ref.flour.ID, "amount": 300},
			{"id": ref.egg.ID, "amount": 2},
		},
		"tags": []uuid.UUID{ref.tag.ID},
	}
}

// createRecipe posts a recipe over the API and returns its id.
func createRecipe(t *testing.T, router *gin.Engine, token string, payload gin.H) uuid.UUID {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/api/v1/recipes", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, err := uuid.Parse(decodeBody(t, w)["id"].(string))
	require.NoError(t, err)
	return id
}
