package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	deps := api.Dependencies{DB: db}

	// Redis backs the recipe cache and rate limiting; without it both are disabled
	var cache service.RecipeCache
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cache = service.NewRedisRecipeCache(redisClient, cfg.RecipeCacheTTL)
		deps.Redis = redisClient
		deps.WriteLimiter = middleware.NewWriteRateLimiter(redisClient, cfg.WriteRateLimit, cfg.RateLimitWindow)
		deps.VerificationLimiter = middleware.NewVerificationRateLimiter(redisClient, cfg.VerifyRateLimit, cfg.RateLimitWindow)
	} else {
		log.Println("Redis not configured: recipe cache and rate limiting disabled")
	}

	// Initialize services
	recipeService := service.NewRecipeService(db, cache)
	deps.Recipes = recipeService
	deps.Users = service.NewUserService(db, service.NewPasswordHasher(cfg.BcryptCost))
	deps.Catalog = service.NewCatalogService(db)

	if cfg.S3Enabled() {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		deps.Images = service.NewImageService(s3Cfg, recipeService)
	} else {
		log.Println("S3 not configured: recipe image uploads disabled")
	}

	srv := server.New(cfg, deps)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}
