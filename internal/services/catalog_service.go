package services

import (
	"errors"

	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"gorm.io/gorm"
)

// ListTags returns the principal's tags sorted by name descending. With
// assignedOnly set, only tags referenced by at least one recipe are
// returned.
func ListTags(db *gorm.DB, userID string, assignedOnly bool) ([]models.Tag, error) {
	query := db.Where("user_id = ?", userID).Order("name DESC")
	if assignedOnly {
		query = query.Where("tag_id IN (?)", db.Table("recipe_tags").Select("tag_id"))
	}

	var tags []models.Tag
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag owned by the principal. A duplicate (owner, name)
// pair is a validation failure, not a constraint leak.
func CreateTag(db *gorm.DB, userID, name string) (*models.Tag, error) {
	if name == "" {
		return nil, types.NewValidationError("name", "must not be empty")
	}

	var count int64
	if err := db.Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewValidationError("name", "already exists")
	}

	tag := models.Tag{UserID: userID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		// A concurrent create can slip past the count check; the unique
		// index catches it and it reports like any other duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewValidationError("name", "already exists")
		}
		return nil, err
	}
	return &tag, nil
}

// RenameTag renames an owned tag. Recipes referencing the tag follow the
// row's identity, so references are unaffected.
func RenameTag(db *gorm.DB, userID string, tagID uint64, name string) (*models.Tag, error) {
	if name == "" {
		return nil, types.NewValidationError("name", "must not be empty")
	}

	var tag models.Tag
	if err := db.Where("user_id = ? AND tag_id = ?", userID, tagID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("tag")
		}
		return nil, err
	}

	if tag.Name != name {
		var count int64
		if err := db.Model(&models.Tag{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, types.NewValidationError("name", "already exists")
		}

		if err := db.Model(&tag).Update("name", name).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, types.NewValidationError("name", "already exists")
			}
			return nil, err
		}
	}

	return &tag, nil
}

// DeleteTag removes an owned tag and its recipe join references. Recipes
// themselves are untouched.
func DeleteTag(db *gorm.DB, userID string, tagID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("user_id = ? AND tag_id = ?", userID, tagID).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("tag")
			}
			return err
		}

		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.TagID).Error; err != nil {
			return err
		}

		return tx.Delete(&tag).Error
	})
}

// ListIngredients returns the principal's ingredients sorted by name
// descending, optionally restricted to ones assigned to a recipe.
func ListIngredients(db *gorm.DB, userID string, assignedOnly bool) ([]models.Ingredient, error) {
	query := db.Where("user_id = ?", userID).Order("name DESC")
	if assignedOnly {
		query = query.Where("ingredient_id IN (?)", db.Table("recipe_ingredients").Select("ingredient_id"))
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the principal.
func CreateIngredient(db *gorm.DB, userID, name string) (*models.Ingredient, error) {
	if name == "" {
		return nil, types.NewValidationError("name", "must not be empty")
	}

	var count int64
	if err := db.Model(&models.Ingredient{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewValidationError("name", "already exists")
	}

	ingredient := models.Ingredient{UserID: userID, Name: name}
	if err := db.Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewValidationError("name", "already exists")
		}
		return nil, err
	}
	return &ingredient, nil
}

// RenameIngredient renames an owned ingredient.
func RenameIngredient(db *gorm.DB, userID string, ingredientID uint64, name string) (*models.Ingredient, error) {
	if name == "" {
		return nil, types.NewValidationError("name", "must not be empty")
	}

	var ingredient models.Ingredient
	if err := db.Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("ingredient")
		}
		return nil, err
	}

	if ingredient.Name != name {
		var count int64
		if err := db.Model(&models.Ingredient{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, types.NewValidationError("name", "already exists")
		}

		if err := db.Model(&ingredient).Update("name", name).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, types.NewValidationError("name", "already exists")
			}
			return nil, err
		}
	}

	return &ingredient, nil
}

// DeleteIngredient removes an owned ingredient and its recipe join
// references.
func DeleteIngredient(db *gorm.DB, userID string, ingredientID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
			First(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("ingredient")
			}
			return err
		}

		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.IngredientID).Error; err != nil {
			return err
		}

		return tx.Delete(&ingredient).Error
	})
}
