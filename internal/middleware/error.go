package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/apperror"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NewErrorResponse converts err into the body sent to clients. Internal errors never expose their text.
func NewErrorResponse(err error) ErrorResponse {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || apperror.StatusOf(err) == http.StatusInternalServerError {
		return ErrorResponse{
			Error:   apperror.ErrInternal.Error(),
			Message: "Internal Server Error",
		}
	}
	return ErrorResponse{
		Error:   apperror.Kind(err),
		Message: appErr.Message,
		Field:   appErr.Field,
	}
}

// AbortWithError writes err as JSON with its mapped status and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, NewErrorResponse(err))
}

// Recovery turns a panic in any handler into a logged 500 with a JSON body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Error: panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, rec, debug.Stack())
				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   apperror.ErrInternal.Error(),
					Message: "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}

// NotFound answers unknown routes in the same shape as every other error
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   apperror.ErrNotFound.Error(),
			Message: "route " + c.Request.Method + " " + c.Request.URL.Path + " does not exist",
		})
	}
}
