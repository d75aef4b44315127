package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/apperror"
)

// RequireJSON rejects requests with a body whose Content-Type is not application/json
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.ContentType() != gin.MIMEJSON {
			AbortWithError(c, apperror.UnsupportedMediaType("request body must be sent as JSON with Content-Type application/json"))
			return
		}
		c.Next()
	}
}
