// Package apperror defines the error kinds shared by the service and HTTP layers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrValidation           = errors.New("validation_error")
	ErrNotFound             = errors.New("not_found")
	ErrConflict             = errors.New("conflict")
	ErrIntegrity            = errors.New("integrity_error")
	ErrUnsupportedMediaType = errors.New("unsupported_media_type")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrRateLimited          = errors.New("rate_limited")
	ErrInternal             = errors.New("internal_error")
)

// kinds is ordered so that the first match in StatusOf wins.
var kinds = []struct {
	err    error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrIntegrity, http.StatusUnprocessableEntity},
	{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrRateLimited, http.StatusTooManyRequests},
}

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // safe to show to clients
	Field   string // optional: request field at fault
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id any) *AppError {
	return NotFoundBy(resource, "id", id)
}

// NotFoundBy reports a lookup on a field other than the primary key.
func NotFoundBy(resource, field string, value any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with %s %v", resource, field, value),
		Field:   field,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

func Integrity(message string) *AppError {
	return &AppError{
		Err:     ErrIntegrity,
		Message: message,
	}
}

func UnsupportedMediaType(message string) *AppError {
	return &AppError{
		Err:     ErrUnsupportedMediaType,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

func RateLimited(message string) *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: message,
	}
}

// Kind returns the machine-readable kind of err, "internal_error" when err is not an AppError.
func Kind(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		for _, k := range kinds {
			if errors.Is(appErr.Err, k.err) {
				return k.err.Error()
			}
		}
	}
	return ErrInternal.Error()
}

// StatusOf maps err to the HTTP status it should be reported with.
func StatusOf(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	for _, k := range kinds {
		if errors.Is(appErr.Err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// IsUniqueViolation reports whether err came from a unique constraint, on either supported store.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err came from a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// FromDB translates a storage error for resource into an AppError where it has a known kind.
// Anything else is wrapped and reported as internal.
func FromDB(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource, id)
	case IsUniqueViolation(err):
		return Conflict("", fmt.Sprintf("%s already exists", resource))
	case IsForeignKeyViolation(err):
		return Integrity(fmt.Sprintf("%s references a record that does not exist", resource))
	}
	return fmt.Errorf("%s %v: %w", resource, id, err)
}
