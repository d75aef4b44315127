package service

import (
	"context"
	"fmt"

	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/models"
	"gorm.io/gorm"
)

// CatalogService exposes the recipe children on their own
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("id").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, apperror.FromDB(err, "ingredient", id)
	}
	return &ingredient, nil
}

// GetTime looks up a time breakdown by its own id
func (s *CatalogService) GetTime(ctx context.Context, id uint) (*models.Time, error) {
	var t models.Time
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, apperror.FromDB(err, "time", id)
	}
	return &t, nil
}
