package mocks

import (
	"context"
	"io"

	"github.com/pageza/cookbook/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of the ingredient and time lookups
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockCatalogService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockCatalogService) GetTime(ctx context.Context, id uint) (*models.Time, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Time), args.Error(1)
}

// MockImageService is a mock implementation of the image upload service
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadRecipeImage(ctx context.Context, recipeID uint, r io.Reader) (*models.Recipe, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, recipeID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}
