package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAbortWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
		field   string
	}{
		{"validation", apperror.ValidationFailed("name", "recipe name is required"), http.StatusBadRequest, "validation_error", "recipe name is required", "name"},
		{"not found", apperror.NotFound("recipe", 3), http.StatusNotFound, "not_found", "recipe not found with id 3", "id"},
		{"conflict", apperror.Conflict("username", "username julia is already taken"), http.StatusConflict, "conflict", "username julia is already taken", "username"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal_error", "Internal Server Error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", func(c *gin.Context) { AbortWithError(c, tt.err) })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.field, body.Field)
		})
	}
}

func TestInternalErrorTextIsHidden(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		AbortWithError(c, errors.New("dial tcp 10.0.0.5:5432: secret detail"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error)
	assert.False(t, strings.Contains(rec.Body.String(), "boom"))
}

func TestNotFoundRoute(t *testing.T) {
	router := gin.New()
	router.NoRoute(NotFound())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}
