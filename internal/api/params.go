package api

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pageza/cookbook/backend/internal/apperror"
)

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, param string) (uint, error) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.ValidationFailed(param, fmt.Sprintf("invalid %s %q: must be a positive integer", param, raw))
	}
	return uint(id), nil
}

// bindJSON decodes the body into req and turns decoding and binding failures into validation errors
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("", "request body is required")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			return apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
		}
		return apperror.ValidationFailed(field, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
	}

	return apperror.ValidationFailed("", fmt.Sprintf("invalid JSON body: %v", err))
}
