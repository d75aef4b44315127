package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusAndKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"validation", ValidationFailed("name", "name is required"), http.StatusBadRequest, "validation_error"},
		{"not found", NotFound("recipe", 7), http.StatusNotFound, "not_found"},
		{"conflict", Conflict("username", "username already taken"), http.StatusConflict, "conflict"},
		{"integrity", Integrity("dangling reference"), http.StatusUnprocessableEntity, "integrity_error"},
		{"media type", UnsupportedMediaType("Data must be sent as JSON"), http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized, "unauthorized"},
		{"rate limited", RateLimited("slow down"), http.StatusTooManyRequests, "rate_limited"},
		{"wrapped app error", fmt.Errorf("creating recipe: %w", ValidationFailed("name", "x")), http.StatusBadRequest, "validation_error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, StatusOf(tt.err))
			assert.Equal(t, tt.wantKind, Kind(tt.err))
		})
	}
}

func TestErrorsIs(t *testing.T) {
	assert.True(t, errors.Is(NotFound("user", 1), ErrNotFound))
	assert.False(t, errors.Is(NotFound("user", 1), ErrConflict))
	assert.True(t, errors.Is(Conflict("username", "taken"), ErrConflict))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "recipe not found with id 42", NotFound("recipe", 42).Error())

	byName := NotFoundBy("user", "username", "ghost")
	assert.Equal(t, "user not found with username ghost", byName.Error())
	assert.Equal(t, "username", byName.Field)
	assert.ErrorIs(t, byName, ErrNotFound)
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "recipe", 1))
	assert.ErrorIs(t, FromDB(gorm.ErrRecordNotFound, "recipe", 1), ErrNotFound)
	assert.ErrorIs(t, FromDB(gorm.ErrDuplicatedKey, "user", 1), ErrConflict)
	assert.ErrorIs(t, FromDB(&pgconn.PgError{Code: "23505"}, "user", 1), ErrConflict)
	assert.ErrorIs(t, FromDB(&pgconn.PgError{Code: "23503"}, "ingredient", 1), ErrIntegrity)
	assert.ErrorIs(t, FromDB(errors.New("UNIQUE constraint failed: users.username"), "user", 1), ErrConflict)
	assert.ErrorIs(t, FromDB(errors.New("FOREIGN KEY constraint failed"), "time", 1), ErrIntegrity)

	other := errors.New("connection reset")
	err := FromDB(other, "recipe", 3)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}
