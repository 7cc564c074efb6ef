package services

import (
	"errors"

	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"gorm.io/gorm"
)

// RecipeFilters narrows a recipe listing to recipes referencing any of the
// given tag or ingredient ids. Empty slices mean no filtering.
type RecipeFilters struct {
	TagIDs        []uint64
	IngredientIDs []uint64
}

// ListRecipes returns the principal's recipes, newest first. Tags are eager
// loaded for the summary view; ingredient detail is deliberately omitted and
// served by GetRecipe.
func ListRecipes(db *gorm.DB, userID string, filters RecipeFilters) ([]models.Recipe, error) {
	query := db.Where("user_id = ?", userID).
		Preload("Tags").
		Order("recipe_id DESC")

	if len(filters.TagIDs) > 0 {
		query = query.Where("recipe_id IN (?)",
			db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filters.TagIDs))
	}
	if len(filters.IngredientIDs) > 0 {
		query = query.Where("recipe_id IN (?)",
			db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filters.IngredientIDs))
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetRecipe returns the full detail of one recipe. Rows that don't exist and
// rows owned by another user are the same NotFound.
func GetRecipe(db *gorm.DB, userID string, recipeID uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("recipe")
		}
		return nil, err
	}

	return &recipe, nil
}
