package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheck reports whether the database, and Redis when configured, answer a ping
func HealthCheck(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "up"}

		if err := database.HealthCheck(ctx, db); err != nil {
			log.Printf("Health check: database unavailable: %v", err)
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}

		if redisClient != nil {
			checks["redis"] = "up"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Health check: redis unavailable: %v", err)
				checks["redis"] = "down"
				status = http.StatusServiceUnavailable
			}
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status": state,
			"checks": checks,
		})
	}
}
