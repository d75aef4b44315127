package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

type seedUser struct {
	username string
	password string
}

var testUsers = []seedUser{
	{username: "johndoe", password: "testpassword123"},
	{username: "janesmith", password: "testpassword123"},
}

func ingredients(pairs ...string) []types.IngredientInput {
	out := make([]types.IngredientInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.IngredientInput{Name: pairs[i], Quantity: pairs[i+1]})
	}
	return out
}

var sampleRecipes = []types.CreateRecipeRequest{
	{
		Name:     "Buttermilk Pancakes",
		Servings: types.IntValue(4),
		Ingredients: ingredients(
			"flour", "2 cups",
			"buttermilk", "2 cups",
			"eggs", "2",
			"butter", "3 tbsp, melted",
		),
		Instructions: []string{
			"Whisk the dry ingredients together.",
			"Beat in the buttermilk, eggs and butter until just combined.",
			"Cook on a hot griddle until bubbles form, then flip.",
		},
		Time: &types.TimeInput{Prep: types.IntValue(10), Cook: types.IntValue(15), Total: types.IntValue(25)},
	},
	{
		Name:     "Tomato Soup",
		Servings: types.IntValue(6),
		Ingredients: ingredients(
			"tomatoes", "2 lb",
			"onion", "1",
			"vegetable stock", "4 cups",
			"cream", "1/2 cup",
		),
		Instructions: []string{
			"Soften the onion in a large pot.",
			"Add tomatoes and stock and simmer for 30 minutes.",
			"Blend until smooth and stir in the cream.",
		},
		Time: &types.TimeInput{Prep: types.IntValue(15), Cook: types.IntValue(35), Total: types.IntValue(50)},
	},
	{
		Name:     "Overnight Oats",
		Servings: types.IntValue(1),
		Ingredients: ingredients(
			"rolled oats", "1/2 cup",
			"milk", "1/2 cup",
			"yogurt", "1/4 cup",
			"honey", "1 tsp",
		),
		Instructions: []string{
			"Stir everything together in a jar.",
			"Refrigerate overnight.",
		},
		Time: &types.TimeInput{Prep: types.IntValue(5), Inactive: types.IntValue(480)},
	},
	{
		Name:        "Cinnamon Toast",
		Ingredients: ingredients("bread", "2 slices", "butter", "1 tbsp", "cinnamon sugar", "2 tsp"),
		Instructions: []string{
			"Toast the bread, butter it and dust with cinnamon sugar.",
		},
	},
}

func main() {
	skipUsers := flag.Bool("skip-users", false, "Only seed recipes")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()

	if !*skipUsers {
		users := service.NewUserService(db, service.NewPasswordHasher(cfg.BcryptCost))
		for _, u := range testUsers {
			_, err := users.Register(ctx, u.username, u.password)
			switch {
			case errors.Is(err, apperror.ErrConflict):
				log.Printf("User %s already exists, skipping", u.username)
			case err != nil:
				log.Fatalf("Failed to create user %s: %v", u.username, err)
			default:
				log.Printf("Created user %s", u.username)
			}
		}
	}

	recipes := service.NewRecipeService(db, nil)
	for i := range sampleRecipes {
		recipe, err := recipes.CreateRecipe(ctx, &sampleRecipes[i])
		if err != nil {
			log.Fatalf("Failed to create recipe %s: %v", sampleRecipes[i].Name, err)
		}
		log.Printf("Created recipe %s (id %d, %d ingredients)", recipe.Name, recipe.ID, len(recipe.Ingredients))
	}

	log.Printf("Seeded %d recipes", len(sampleRecipes))
}
