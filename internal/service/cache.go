package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pageza/cookbook/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// RecipeCache holds fully loaded recipes between requests. Implementations must
// treat every failure as a miss; the database stays the source of truth.
//
// MarkDeleted drops the entry and keeps Set from storing that recipe again for a
// while, so a read that started before the delete cannot resurrect it.
type RecipeCache interface {
	Get(ctx context.Context, id uint) (*models.Recipe, bool)
	Set(ctx context.Context, recipe *models.Recipe)
	Invalidate(ctx context.Context, id uint)
	MarkDeleted(ctx context.Context, id uint)
}

const defaultRecipeCacheTTL = 10 * time.Minute

// setUnlessDeleted writes KEYS[1] only while the tombstone KEYS[2] is absent
var setUnlessDeleted = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// RedisRecipeCache stores recipes as JSON under recipe:<id>, with deletions
// recorded under recipe:<id>:deleted for one TTL
type RedisRecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRecipeCache(client *redis.Client, ttl time.Duration) *RedisRecipeCache {
	if ttl <= 0 {
		ttl = defaultRecipeCacheTTL
	}
	return &RedisRecipeCache{
		client: client,
		ttl:    ttl,
	}
}

func recipeCacheKey(id uint) string {
	return fmt.Sprintf("recipe:%d", id)
}

func recipeTombstoneKey(id uint) string {
	return fmt.Sprintf("recipe:%d:deleted", id)
}

func (c *RedisRecipeCache) Get(ctx context.Context, id uint) (*models.Recipe, bool) {
	data, err := c.client.Get(ctx, recipeCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[RecipeCache] Failed to read recipe %d from Redis: %v", id, err)
		}
		return nil, false
	}

	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		log.Printf("[RecipeCache] Dropping unreadable entry for recipe %d: %v", id, err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &recipe, true
}

func (c *RedisRecipeCache) Set(ctx context.Context, recipe *models.Recipe) {
	data, err := json.Marshal(recipe)
	if err != nil {
		log.Printf("[RecipeCache] Failed to marshal recipe %d: %v", recipe.ID, err)
		return
	}
	keys := []string{recipeCacheKey(recipe.ID), recipeTombstoneKey(recipe.ID)}
	if err := setUnlessDeleted.Run(ctx, c.client, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		log.Printf("[RecipeCache] Failed to save recipe %d to Redis: %v", recipe.ID, err)
	}
}

func (c *RedisRecipeCache) Invalidate(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, recipeCacheKey(id)).Err(); err != nil {
		log.Printf("[RecipeCache] Failed to delete recipe %d from Redis: %v", id, err)
	}
}

func (c *RedisRecipeCache) MarkDeleted(ctx context.Context, id uint) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recipeTombstoneKey(id), 1, c.ttl)
		pipe.Del(ctx, recipeCacheKey(id))
		return nil
	})
	if err != nil {
		log.Printf("[RecipeCache] Failed to mark recipe %d deleted in Redis: %v", id, err)
	}
}

// NoopRecipeCache is used when Redis is not configured
type NoopRecipeCache struct{}

func (NoopRecipeCache) Get(context.Context, uint) (*models.Recipe, bool) { return nil, false }
func (NoopRecipeCache) Set(context.Context, *models.Recipe)              {}
func (NoopRecipeCache) Invalidate(context.Context, uint)                 {}
func (NoopRecipeCache) MarkDeleted(context.Context, uint)                {}
