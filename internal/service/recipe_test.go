package service

import (
	"context"
	"testing"

	"github.com/pageza/cookbook/backend/internal/apperror"
	"github.com/pageza/cookbook/backend/internal/models"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
	"github.com/pageza/cookbook/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRecipeService(t *testing.T) (*RecipeService, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return NewRecipeService(db, nil), db
}

func pancakeRequest() *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Name:     "Pancakes",
		Servings: types.IntValue(4),
		Ingredients: []types.IngredientInput{
			{Name: "flour", Quantity: "2 cups"},
			{Name: "milk", Quantity: "1 cup"},
		},
		Instructions: []string{"Mix everything", "Fry in batches\nflip once"},
		Time: &types.TimeInput{
			Prep: types.IntValue(10),
			Cook: types.IntValue(20),
		},
	}
}

func TestCreateRecipeWithChildren(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, pancakeRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	recipe, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", recipe.Name)
	require.NotNil(t, recipe.Servings)
	assert.Equal(t, 4, *recipe.Servings)
	assert.Nil(t, recipe.ImageURL)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "flour", recipe.Ingredients[0].Name)
	assert.Equal(t, "2 cups", recipe.Ingredients[0].Quantity)
	assert.Equal(t, recipe.ID, recipe.Ingredients[1].RecipeID)

	assert.Equal(t, models.JSONBStringArray{"Mix everything", "Fry in batches\nflip once"}, recipe.Instructions)

	require.NotNil(t, recipe.Time)
	require.NotNil(t, recipe.Time.Prep)
	require.NotNil(t, recipe.Time.Cook)
	assert.Equal(t, 10, *recipe.Time.Prep)
	assert.Equal(t, 20, *recipe.Time.Cook)
	assert.Nil(t, recipe.Time.Active)
	assert.Nil(t, recipe.Time.Inactive)
	assert.Nil(t, recipe.Time.Ready)
	assert.Nil(t, recipe.Time.Total)
}

func TestCreateRecipeWithoutTimeStillGetsTimeRow(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, &types.CreateRecipeRequest{Name: "Toast"})
	require.NoError(t, err)

	require.NotNil(t, recipe.Time)
	assert.Nil(t, recipe.Time.Prep)
	assert.Empty(t, recipe.Ingredients)
	assert.Empty(t, recipe.Instructions)

	var times int64
	require.NoError(t, db.Model(&models.Time{}).Where("recipe_id = ?", recipe.ID).Count(&times).Error)
	assert.Equal(t, int64(1), times)
}

func TestCreateRecipeValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   *types.CreateRecipeRequest
		field string
	}{
		{"blank name", &types.CreateRecipeRequest{Name: "   "}, "name"},
		{"negative servings", &types.CreateRecipeRequest{Name: "x", Servings: types.IntValue(-1)}, "servings"},
		{"blank ingredient", &types.CreateRecipeRequest{Name: "x", Ingredients: []types.IngredientInput{{Name: " "}}}, "ingredients[0].name"},
		{"negative time", &types.CreateRecipeRequest{Name: "x", Time: &types.TimeInput{Total: types.IntValue(-5)}}, "time.total"},
	}

	svc, db := newTestRecipeService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeRollsBackOnChildFailure(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()

	// Fail every time insert so the recipe and ingredient inserts must be undone.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_times", func(tx *gorm.DB) {
		if tx.Statement.Table == "times" {
			_ = tx.AddError(assert.AnError)
		}
	}))

	_, err := svc.CreateRecipe(ctx, pancakeRequest())
	require.Error(t, err)

	var recipes, ingredients int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, ingredients)
}

func TestCreateRecipeKeepsStepsVerbatim(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	steps := []string{"Boil water", "", "  Steep\tfor 3 minutes  ", "Line one\nline two"}

	recipe, err := svc.CreateRecipe(context.Background(), &types.CreateRecipeRequest{
		Name:         "Tea",
		Image:        "  https://example.com/tea.png ",
		Instructions: steps,
	})
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray(steps), recipe.Instructions)
	require.NotNil(t, recipe.ImageURL)
	assert.Equal(t, "https://example.com/tea.png", *recipe.ImageURL)

	reloaded, err := svc.GetRecipe(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray(steps), reloaded.Instructions)
}

func TestDeleteRecipeRemovesChildren(t *testing.T) {
	svc, db := newTestRecipeService(t)
	catalog := NewCatalogService(db)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, pancakeRequest())
	require.NoError(t, err)
	ingredientIDs := []uint{recipe.Ingredients[0].ID, recipe.Ingredients[1].ID}
	timeID := recipe.Time.ID

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))

	_, err = svc.GetRecipe(ctx, recipe.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	for _, id := range ingredientIDs {
		_, err = catalog.GetIngredient(ctx, id)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	}
	_, err = catalog.GetTime(ctx, timeID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteRecipeCascadesAtStorageLevel(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, pancakeRequest())
	require.NoError(t, err)

	// Bypass the service so only the foreign keys can remove the children.
	require.NoError(t, db.Exec("DELETE FROM recipes WHERE id = ?", recipe.ID).Error)

	var ingredients, times int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, db.Model(&models.Time{}).Count(&times).Error)
	assert.Zero(t, ingredients)
	assert.Zero(t, times)
}

func TestDeleteRecipeUnknown(t *testing.T) {
	svc, _ := newTestRecipeService(t)

	err := svc.DeleteRecipe(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestChildWithoutParentIsRejected(t *testing.T) {
	_, db := newTestRecipeService(t)

	err := db.Create(&models.Ingredient{RecipeID: 999, Name: "orphan"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, apperror.FromDB(err, "ingredient", 999), apperror.ErrIntegrity)
}

func TestListRecipes(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	_, err = svc.CreateRecipe(ctx, pancakeRequest())
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, &types.CreateRecipeRequest{Name: "Toast"})
	require.NoError(t, err)

	recipes, err = svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Pancakes", recipes[0].Name)
	assert.Len(t, recipes[0].Ingredients, 2)
	require.NotNil(t, recipes[1].Time)
}

func TestRandomRecipe(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()

	_, err := svc.RandomRecipe(ctx)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	stored := map[uint]bool{}
	for _, name := range []string{"Soup", "Salad", "Stew"} {
		recipe, err := svc.CreateRecipe(ctx, &types.CreateRecipeRequest{Name: name})
		require.NoError(t, err)
		stored[recipe.ID] = true
	}

	seen := map[uint]bool{}
	for i := 0; i < 200; i++ {
		recipe, err := svc.RandomRecipe(ctx)
		require.NoError(t, err)
		assert.True(t, stored[recipe.ID], "random recipe %d was never stored", recipe.ID)
		seen[recipe.ID] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRandomRecipeSingle(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()

	only, err := svc.CreateRecipe(ctx, &types.CreateRecipeRequest{Name: "Only"})
	require.NoError(t, err)

	recipe, err := svc.RandomRecipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, only.ID, recipe.ID)
}

func TestSetImage(t *testing.T) {
	svc, _ := newTestRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, &types.CreateRecipeRequest{Name: "Toast"})
	require.NoError(t, err)

	updated, err := svc.SetImage(ctx, recipe.ID, "https://cdn.example.com/toast.png")
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "https://cdn.example.com/toast.png", *updated.ImageURL)

	_, err = svc.SetImage(ctx, recipe.ID+1, "https://cdn.example.com/x.png")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
