package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recipeapp.com/internal/model"
)

func samplePayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		"time_in_minutes": 8,
		"price":           "132.50",
		"description":     "Sample Description",
		"link":            "http://ex.com/recipe.pdf",
	}
}

func (e *testEnv) createRecipe(t *testing.T, token, title string) uint {
	t.Helper()
	status, body := e.doObject(t, http.MethodPost, "/api/recipes", token, samplePayload(title))
	require.Equal(t, http.StatusCreated, status, body)
	return uint(body["id"].(float64))
}

func recipePath(id uint) string {
	return fmt.Sprintf("/api/recipes/%d", id)
}

func TestRecipes_AuthRequired(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.doObject(t, http.MethodGet, "/api/recipes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.doObject(t, http.MethodPost, "/api/recipes", "", samplePayload("x"))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.doObject(t, http.MethodGet, "/api/recipes/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRecipes_ListSummaryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")

	first := env.createRecipe(t, token, "First")
	second := env.createRecipe(t, token, "Second")

	status, list := env.doList(t, http.MethodGet, "/api/recipes", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)

	assert.EqualValues(t, second, list[0]["id"])
	assert.EqualValues(t, first, list[1]["id"])
	for _, item := range list {
		assert.NotContains(t, item, "description")
		assert.ElementsMatch(t, []string{"id", "title", "time_in_minutes", "price", "link"}, keys(item))
		assert.Equal(t, "132.50", item["price"])
	}
}

func TestRecipes_ListLimitedToUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")
	otherToken := env.register(t, "other_email@ex.com", "otheruser123")

	env.createRecipe(t, otherToken, "Other")
	mine := env.createRecipe(t, token, "Mine")
	env.createRecipe(t, otherToken, "Other again")

	status, list := env.doList(t, http.MethodGet, "/api/recipes", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.EqualValues(t, mine, list[0]["id"])
}

func TestRecipes_DetailShape(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")
	id := env.createRecipe(t, token, "Detailed")

	status, body := env.doObject(t, http.MethodGet, recipePath(id), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sample Description", body["description"])
	assert.Equal(t, "Detailed", body["title"])
	assert.EqualValues(t, 8, body["time_in_minutes"])
	assert.Equal(t, "132.50", body["price"])
	assert.Equal(t, "http://ex.com/recipe.pdf", body["link"])
	assert.NotContains(t, body, "user_id")
}

func TestRecipes_CreateDefaultsAndOwnerForced(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")
	otherToken := env.register(t, "other@ex.com", "otheruser123")

	status, body := env.doObject(t, http.MethodPost, "/api/recipes", token, map[string]interface{}{
		"title":   "Minimal",
		"user_id": 999,
		"user":    999,
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.EqualValues(t, 5, body["time_in_minutes"])
	assert.Equal(t, "0.00", body["price"])
	assert.Equal(t, "", body["description"])

	var recipe model.Recipe
	require.NoError(t, env.eng.DB().First(&recipe, uint(body["id"].(float64))).Error)
	var owner model.User
	require.NoError(t, env.eng.DB().First(&owner, recipe.UserID).Error)
	assert.Equal(t, "test@user.com", owner.Email)

	status, list := env.doList(t, http.MethodGet, "/api/recipes", otherToken)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}

func TestRecipes_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")

	cases := []map[string]interface{}{
		{},
		{"title": ""},
		{"title": "x", "price": "1234.00"},
		{"title": "x", "price": 1.234},
		{"title": "x", "time_in_minutes": "ten"},
	}
	for _, payload := range cases {
		status, _ := env.doObject(t, http.MethodPost, "/api/recipes", token, payload)
		assert.Equal(t, http.StatusBadRequest, status, "%v", payload)
	}

	status, body := env.doObject(t, http.MethodPost, "/api/recipes", token, map[string]interface{}{"title": "num", "price": 5.25})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "5.25", body["price"])
}

func TestRecipes_PartialAndFullUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")
	id := env.createRecipe(t, token, "Original")

	status, body := env.doObject(t, http.MethodPatch, recipePath(id), token, map[string]interface{}{"title": "Patched"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Patched", body["title"])
	assert.Equal(t, "http://ex.com/recipe.pdf", body["link"])
	assert.Equal(t, "Sample Description", body["description"])

	status, _ = env.doObject(t, http.MethodPut, recipePath(id), token, map[string]interface{}{"link": "x"})
	assert.Equal(t, http.StatusBadRequest, status, "PUT requires title")

	status, body = env.doObject(t, http.MethodPut, recipePath(id), token, map[string]interface{}{
		"title":           "Replaced",
		"time_in_minutes": 25,
		"price":           "5.00",
		"description":     "New",
		"link":            "https://example.com/r.pdf",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Replaced", body["title"])
	assert.EqualValues(t, 25, body["time_in_minutes"])
	assert.Equal(t, "5.00", body["price"])
	assert.Equal(t, "New", body["description"])
}

func TestRecipes_OtherUsersRecipeIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.register(t, "owner@ex.com", "ownerpass")
	otherToken := env.register(t, "other@ex.com", "otherpass")
	id := env.createRecipe(t, ownerToken, "Private")

	statusMissing, missingBody := env.doObject(t, http.MethodGet, recipePath(id+100), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, statusMissing)

	status, body := env.doObject(t, http.MethodGet, recipePath(id), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, missingBody, body, "foreign and missing recipes look the same")

	status, _ = env.doObject(t, http.MethodPatch, recipePath(id), otherToken, map[string]interface{}{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.doObject(t, http.MethodPut, recipePath(id), otherToken, samplePayload("stolen"))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.doObject(t, http.MethodDelete, recipePath(id), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = env.doObject(t, http.MethodGet, recipePath(id), ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Private", body["title"])
}

func TestRecipes_Delete(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "test@user.com", "Testpass123")
	id := env.createRecipe(t, token, "Doomed")

	status, raw := env.do(t, http.MethodDelete, recipePath(id), token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, _ = env.doObject(t, http.MethodGet, recipePath(id), token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.doObject(t, http.MethodGet, "/api/recipes/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
