package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/models"
)

// MaxImageBytes is the largest recipe image accepted for upload
const MaxImageBytes = 5 << 20

const imageKeyPrefix = "recipe-images/"

// ImageStore persists image bytes and returns the URL they are served from.
// config.S3Config satisfies it.
type ImageStore interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageService handles recipe image uploads
type ImageService struct {
	store   ImageStore
	recipes *RecipeService
}

// NewImageService creates a new ImageService instance
func NewImageService(store ImageStore, recipes *RecipeService) *ImageService {
	return &ImageService{
		store:   store,
		recipes: recipes,
	}
}

// UploadRecipeImage stores the image read from r and points the recipe at it.
// The content type is detected from the bytes; the client's claim is ignored.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uint, r io.Reader) (*models.Recipe, error) {
	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, apperror.ValidationFailed("image", "image file is empty")
	}
	if len(data) > MaxImageBytes {
		return nil, apperror.ValidationFailed("image", fmt.Sprintf("image must be %d MiB or smaller", MaxImageBytes>>20))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperror.UnsupportedMediaType(fmt.Sprintf("expected an image, got %s", mtype.String()))
	}

	key := imageKeyPrefix + uuid.New().String() + mtype.Extension()
	url, err := s.store.UploadObject(ctx, key, data, mtype.String())
	if err != nil {
		log.Printf("[ImageService] Failed to upload image for recipe %d: %v", recipeID, err)
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	log.Printf("[ImageService] Stored image for recipe %d at %s", recipeID, url)
	return s.recipes.SetImage(ctx, recipeID, url)
}
