package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastebook/backend/internal/models"
)

// RecipeFilter narrows ListRecipes results.
type RecipeFilter struct {
	Query      string
	Category   string
	Difficulty string
	UserID     *uuid.UUID
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe updates a recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(recipe).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// ListRecipes lists recipes matching the filter. With a search query on
// postgres, results are ordered by embedding distance; on other
// dialects a keyword LIKE match is used instead.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx)

	if filter.Query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(filter.Query)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(filter.Query) + "%"
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?",
				like, like, like,
			)
		}
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// FavoriteRecipe marks a recipe as a favorite of the given user.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	fav := models.RecipeFavorite{RecipeID: recipeID, UserID: userID}
	return s.db.WithContext(ctx).Create(&fav).Error
}

// UnfavoriteRecipe removes a favorite.
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeFavorite{}).Error
}
