package types

import (
	"github.com/pageza/cookbook/backend/internal/models"
)

// RecipeResponse is the wire form of a recipe with its children expanded inline
type RecipeResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Servings     *int                 `json:"servings"`
	ImageURL     *string              `json:"image_url"`
	Instructions []string             `json:"instructions"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	Time         *TimeResponse        `json:"time"`
}

type IngredientResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	RecipeID uint   `json:"recipe_id"`
}

type TimeResponse struct {
	ID       uint `json:"id"`
	Prep     *int `json:"prep"`
	Cook     *int `json:"cook"`
	Active   *int `json:"active"`
	Inactive *int `json:"inactive"`
	Ready    *int `json:"ready"`
	Total    *int `json:"total"`
}

// NewRecipeResponse serializes a recipe. Ingredients and Time must be preloaded.
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Servings:     r.Servings,
		Instructions: []string(r.Instructions),
		Ingredients:  NewIngredientResponses(r.Ingredients),
	}
	if resp.Instructions == nil {
		resp.Instructions = []string{}
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		resp.ImageURL = r.ImageURL
	}
	if r.Time != nil {
		t := NewTimeResponse(r.Time)
		resp.Time = &t
	}
	return resp
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}

func NewIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:       i.ID,
		Name:     i.Name,
		Quantity: i.Quantity,
		RecipeID: i.RecipeID,
	}
}

func NewIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, NewIngredientResponse(&ingredients[i]))
	}
	return out
}

func NewTimeResponse(t *models.Time) TimeResponse {
	return TimeResponse{
		ID:       t.ID,
		Prep:     t.Prep,
		Cook:     t.Cook,
		Active:   t.Active,
		Inactive: t.Inactive,
		Ready:    t.Ready,
		Total:    t.Total,
	}
}
