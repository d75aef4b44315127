package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/models"
	"github.com/pageza/cookbook/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxRecipeNameLength = 200
	randomPickAttempts  = 3
)

// RecipeService handles recipe operations
type RecipeService struct {
	db    *gorm.DB
	cache RecipeCache
}

// NewRecipeService creates a new RecipeService instance. A nil cache disables caching.
func NewRecipeService(db *gorm.DB, cache RecipeCache) *RecipeService {
	if cache == nil {
		cache = NoopRecipeCache{}
	}
	return &RecipeService{
		db:    db,
		cache: cache,
	}
}

// withChildren preloads ingredients in insertion order and the time breakdown
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Time")
}

func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := withChildren(s.db.WithContext(ctx)).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe returns the recipe with its ingredients and time, serving from the cache when possible
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	if recipe, ok := s.cache.Get(ctx, id); ok {
		return recipe, nil
	}

	var recipe models.Recipe
	if err := withChildren(s.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, apperror.FromDB(err, "recipe", id)
	}

	s.cache.Set(ctx, &recipe)
	return &recipe, nil
}

// RandomRecipe picks one stored recipe with uniform probability
func (s *RecipeService) RandomRecipe(ctx context.Context) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	for attempt := 1; attempt <= randomPickAttempts; attempt++ {
		var count int64
		if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count recipes: %w", err)
		}
		if count == 0 {
			return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "no recipes available"}
		}

		var ids []uint
		err := db.Model(&models.Recipe{}).
			Order("id").
			Offset(rand.Intn(int(count))).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return nil, fmt.Errorf("failed to pick random recipe: %w", err)
		}
		if len(ids) == 0 {
			// rows were deleted between the count and the pick
			continue
		}

		recipe, err := s.GetRecipe(ctx, ids[0])
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		return recipe, err
	}

	return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "no recipes available"}
}

// CreateRecipe inserts the recipe, its ingredients and its time breakdown in one transaction.
// A recipe always gets a time row, with every field null when req.Time is nil.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe, err := buildRecipe(req)
	if err != nil {
		return nil, err
	}
	ingredients := recipe.Ingredients
	timing := recipe.Time
	recipe.Ingredients = nil
	recipe.Time = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return apperror.FromDB(err, "recipe", recipe.Name)
		}

		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return apperror.FromDB(err, "ingredient", recipe.ID)
			}
		}

		timing.RecipeID = recipe.ID
		if err := tx.Create(timing).Error; err != nil {
			return apperror.FromDB(err, "time", recipe.ID)
		}
		return nil
	})
	if err != nil {
		log.Printf("[RecipeService] Failed to create recipe %q: %v", req.Name, err)
		return nil, err
	}

	log.Printf("[RecipeService] Created recipe %d (%s) with %d ingredients", recipe.ID, recipe.Name, len(ingredients))
	return s.GetRecipe(ctx, recipe.ID)
}

// DeleteRecipe removes the recipe and all of its children in one transaction
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id").First(&recipe, id).Error; err != nil {
			return apperror.FromDB(err, "recipe", id)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredients of recipe %d: %w", id, err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Time{}).Error; err != nil {
			return fmt.Errorf("failed to delete time of recipe %d: %w", id, err)
		}
		if err := tx.Delete(&models.Recipe{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.MarkDeleted(ctx, id)
	log.Printf("[RecipeService] Deleted recipe %d", id)
	return nil
}

// SetImage points the recipe at a new image and returns the updated recipe
func (s *RecipeService) SetImage(ctx context.Context, id uint, imageURL string) (*models.Recipe, error) {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", imageURL)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set image of recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("recipe", id)
	}

	s.cache.Invalidate(ctx, id)
	return s.GetRecipe(ctx, id)
}

// buildRecipe validates req and converts it into an unsaved recipe with children attached
func buildRecipe(req *types.CreateRecipeRequest) (*models.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "recipe name is required")
	}
	if len(name) > maxRecipeNameLength {
		return nil, apperror.ValidationFailed("name", fmt.Sprintf("recipe name must be %d characters or fewer", maxRecipeNameLength))
	}

	servings, err := nonNegative("servings", req.Servings)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:         name,
		Servings:     servings,
		Instructions: models.JSONBStringArray{},
		Ingredients:  make([]models.Ingredient, 0, len(req.Ingredients)),
	}

	if image := strings.TrimSpace(req.Image); image != "" {
		recipe.ImageURL = &image
	}

	// steps are stored exactly as sent so they read back unchanged
	recipe.Instructions = append(recipe.Instructions, req.Instructions...)

	for i, in := range req.Ingredients {
		ingredientName := strings.TrimSpace(in.Name)
		if ingredientName == "" {
			return nil, apperror.ValidationFailed(fmt.Sprintf("ingredients[%d].name", i), "ingredient name is required")
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:     ingredientName,
			Quantity: strings.TrimSpace(in.Quantity),
		})
	}

	timing, err := buildTime(req.Time)
	if err != nil {
		return nil, err
	}
	recipe.Time = timing

	return recipe, nil
}

func buildTime(in *types.TimeInput) (*models.Time, error) {
	t := &models.Time{}
	if in == nil {
		return t, nil
	}

	fields := []struct {
		name  string
		value types.OptionalInt
		dest  **int
	}{
		{"time.prep", in.Prep, &t.Prep},
		{"time.cook", in.Cook, &t.Cook},
		{"time.active", in.Active, &t.Active},
		{"time.inactive", in.Inactive, &t.Inactive},
		{"time.ready", in.Ready, &t.Ready},
		{"time.total", in.Total, &t.Total},
	}
	for _, f := range fields {
		v, err := nonNegative(f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}
	return t, nil
}

func nonNegative(field string, v types.OptionalInt) (*int, error) {
	p := v.Ptr()
	if p != nil && *p < 0 {
		return nil, apperror.ValidationFailed(field, fmt.Sprintf("%s must not be negative", field))
	}
	return p, nil
}
