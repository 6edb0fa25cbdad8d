package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

func TestRecipeServiceCRUD(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, &models.Recipe{
		Title:       "Shakshuka",
		Description: "Eggs poached in tomato sauce",
		Category:    "breakfast",
		Difficulty:  "easy",
		UserID:      owner,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("get", func(t *testing.T) {
		got, err := svc.GetRecipe(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shakshuka", got.Title)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.UpdateRecipe(ctx, created.ID, &models.Recipe{
			Title:       "Shakshuka deluxe",
			Description: "Eggs poached in spicy tomato sauce",
		})
		require.NoError(t, err)
		assert.Equal(t, "Shakshuka deluxe", updated.Title)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
		_, err := svc.GetRecipe(ctx, created.ID)
		assert.Error(t, err)
	})

	t.Run("delete missing recipe errors", func(t *testing.T) {
		assert.Error(t, svc.DeleteRecipe(ctx, uuid.New()))
	})
}

func TestRecipeServiceListFilters(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	seed := []*models.Recipe{
		{Title: "Pancakes", Ingredients: "flour\neggs\nmilk", Category: "breakfast", Difficulty: "easy", UserID: alice},
		{Title: "Beef Wellington", Ingredients: "beef\npastry", Category: "dinner", Difficulty: "hard", UserID: alice},
		{Title: "Pancake cake", Ingredients: "flour\ncream", Category: "dessert", Difficulty: "medium", UserID: bob},
	}
	for _, r := range seed {
		_, err := svc.CreateRecipe(ctx, r)
		require.NoError(t, err)
	}

	t.Run("keyword search matches title and ingredients", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Query: "pancake"})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = svc.ListRecipes(ctx, service.RecipeFilter{Query: "pastry"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beef Wellington", got[0].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Category: "breakfast"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pancakes", got[0].Title)
	})

	t.Run("difficulty filter", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Difficulty: "hard"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beef Wellington", got[0].Title)
	})

	t.Run("owner filter", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{UserID: &bob})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pancake cake", got[0].Title)
	})
}

func TestRecipeServiceFavorites(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	user := uuid.New()

	recipe, err := svc.CreateRecipe(ctx, &models.Recipe{Title: "Ratatouille", UserID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, svc.FavoriteRecipe(ctx, recipe.ID, user))

	var count int64
	db.Model(&models.RecipeFavorite{}).Where("user_id = ?", user).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.UnfavoriteRecipe(ctx, recipe.ID, user))
	db.Model(&models.RecipeFavorite{}).Where("user_id = ?", user).Count(&count)
	assert.Equal(t, int64(0), count)
}
