package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies are the services the HTTP layer is built from.
// Images, Redis and the limiters are optional.
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Users   service.IUserService
	Recipes service.IRecipeService
	Catalog service.ICatalogService
	Images  service.IImageService

	WriteLimiter        *middleware.RateLimiter
	VerificationLimiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck(deps.DB, deps.Redis))
	router.NoRoute(middleware.NotFound())

	writes := rateLimit(deps.WriteLimiter)
	verifications := rateLimit(deps.VerificationLimiter)
	requireJSON := middleware.RequireJSON()

	recipeHandler := NewRecipeHandler(deps.Recipes)
	recipes := router.Group("/recipe")
	{
		recipes.GET("/get-all", recipeHandler.ListRecipes)
		recipes.GET("/get/:id", recipeHandler.GetRecipe)
		recipes.GET("/random", recipeHandler.RandomRecipe)
		recipes.POST("/add", writes, requireJSON, recipeHandler.CreateRecipe)
		recipes.DELETE("/delete/:id", writes, recipeHandler.DeleteRecipe)
		if deps.Images != nil {
			imageHandler := NewImageHandler(deps.Images)
			recipes.POST("/image/:id", writes, imageHandler.UploadRecipeImage)
		}
	}

	catalogHandler := NewCatalogHandler(deps.Catalog)
	router.GET("/ingredient/get-all", catalogHandler.ListIngredients)
	router.GET("/ingredient/get/:id", catalogHandler.GetIngredient)
	router.GET("/time/get/:id", catalogHandler.GetTime)

	userHandler := NewUserHandler(deps.Users)
	users := router.Group("/user")
	{
		users.GET("/get", userHandler.ListUsers)
		users.GET("/get/:id", userHandler.GetUser)
		users.GET("/get_name/:name", userHandler.GetUserByName)
		users.POST("/add", writes, requireJSON, userHandler.RegisterUser)
		users.POST("/verification", verifications, requireJSON, userHandler.VerifyUser)
		users.PUT("/update", writes, requireJSON, userHandler.UpdateUser)
		users.DELETE("/delete/:id", writes, userHandler.DeleteUser)
	}
}

// rateLimit returns the limiter's middleware, or a pass-through when rate limiting is disabled
func rateLimit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}
