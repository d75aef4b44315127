package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
	"github.com/pageza/cookbook/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const verifyLimit = 3

// setupServer runs the full stack against Postgres and Redis containers
func setupServer(t *testing.T) http.Handler {
	t.Helper()
	db := testhelpers.SetupPostgresDatabase(t)
	redisClient := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		Environment:        config.Test,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		CORSAllowedOrigins: []string{"*"},
	}
	srv := server.New(cfg, api.Dependencies{
		DB:                  db,
		Redis:               redisClient,
		Users:               service.NewUserService(db, service.NewPasswordHasher(bcrypt.MinCost)),
		Recipes:             service.NewRecipeService(db, service.NewRedisRecipeCache(redisClient, time.Minute)),
		Catalog:             service.NewCatalogService(db),
		WriteLimiter:        middleware.NewWriteRateLimiter(redisClient, 100, time.Hour),
		VerificationLimiter: middleware.NewVerificationRateLimiter(redisClient, verifyLimit, time.Hour),
	})
	return srv.Handler()
}

func send(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecipeLifecycle(t *testing.T) {
	h := setupServer(t)

	rec := send(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "checks": {"database": "up", "redis": "up"}}`, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/recipe/add", map[string]interface{}{
		"name":         "Shakshuka",
		"servings":     "2",
		"ingredients":  []map[string]string{{"name": "eggs", "quantity": "4"}, {"name": "tomatoes", "quantity": "1 can"}},
		"instructions": []string{"Simmer the sauce", "Poach the eggs"},
		"time":         map[string]interface{}{"prep": 5, "cook": "20"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	var created types.RecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Ingredients, 2)
	require.NotNil(t, created.Time)

	// the second read is served from the cache and must match the first
	first := send(t, h, http.MethodGet, fmt.Sprintf("/recipe/get/%d", created.ID), nil)
	second := send(t, h, http.MethodGet, fmt.Sprintf("/recipe/get/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rec = send(t, h, http.MethodDelete, fmt.Sprintf("/recipe/delete/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNotFound, send(t, h, http.MethodGet, fmt.Sprintf("/recipe/get/%d", created.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, send(t, h, http.MethodGet, fmt.Sprintf("/ingredient/get/%d", created.Ingredients[0].ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, send(t, h, http.MethodGet, fmt.Sprintf("/time/get/%d", created.Time.ID), nil).Code)
}

func TestUserLifecycle(t *testing.T) {
	h := setupServer(t)

	rec := send(t, h, http.MethodPost, "/user/add", map[string]string{"username": "julia", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/user/add", map[string]string{"username": "julia", "password": "s3cret"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(t, h, http.MethodPost, "/user/verification", map[string]string{"username": "julia", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	for i := 1; i < verifyLimit; i++ {
		rec = send(t, h, http.MethodPost, "/user/verification", map[string]string{"username": "julia", "password": "guess"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec = send(t, h, http.MethodPost, "/user/verification", map[string]string{"username": "julia", "password": "s3cret"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
