package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

// room for the multipart envelope around the file itself
const multipartOverhead = 1 << 20

// ImageHandler handles recipe image uploads
type ImageHandler struct {
	images service.IImageService
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(images service.IImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// UploadRecipeImage accepts a multipart form with the file in the "image" field
func (h *ImageHandler) UploadRecipeImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageBytes+multipartOverhead)
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, apperror.ValidationFailed("image", fmt.Sprintf("image must be %d MiB or smaller", service.MaxImageBytes>>20)))
			return
		}
		middleware.AbortWithError(c, apperror.ValidationFailed("image", "multipart form field image is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.AbortWithError(c, fmt.Errorf("failed to open uploaded image: %w", err))
		return
	}
	defer func() { _ = file.Close() }()

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), id, file)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe))
}
