package service

import (
	"context"
	"io"

	"github.com/pageza/cookbook/backend/internal/models"
	"github.com/pageza/cookbook/backend/internal/types"
)

// IUserService defines the interface for user account operations
type IUserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	Verify(ctx context.Context, username, password string) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	RandomRecipe(ctx context.Context) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint) error
}

// ICatalogService defines the interface for ingredient and time lookups
type ICatalogService interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
	GetTime(ctx context.Context, id uint) (*models.Time, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uint, r io.Reader) (*models.Recipe, error)
}

var (
	_ IUserService    = (*UserService)(nil)
	_ IRecipeService  = (*RecipeService)(nil)
	_ ICatalogService = (*CatalogService)(nil)
	_ IImageService   = (*ImageService)(nil)
	_ RecipeCache     = (*RedisRecipeCache)(nil)
	_ RecipeCache     = NoopRecipeCache{}
)
