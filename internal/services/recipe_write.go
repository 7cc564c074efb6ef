package services

import (
	"errors"
	"net/url"

	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeInput is the payload for creating a recipe. The owner never comes
// from the payload; it is always the authenticated principal.
type RecipeInput struct {
	Title       string          `json:"title"`
	TimeMinutes types.FlexInt   `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Link        string          `json:"link"`
	Tags        []NameInput     `json:"tags"`
	Ingredients []NameInput     `json:"ingredients"`
}

// RecipeUpdateInput is the payload for partial recipe updates. Nil fields
// are left untouched. A present Tags or Ingredients key, even an empty list,
// replaces that whole reference set.
type RecipeUpdateInput struct {
	Title       *string          `json:"title"`
	TimeMinutes *types.FlexInt   `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link"`
	Tags        *[]NameInput     `json:"tags"`
	Ingredients *[]NameInput     `json:"ingredients"`
}

func validateTitle(title string) error {
	if title == "" {
		return types.NewValidationError("title", "must not be empty")
	}
	return nil
}

func validateTimeMinutes(minutes int) error {
	if minutes < 0 {
		return types.NewValidationError("time_minutes", "must not be negative")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return types.NewValidationError("price", "must not be negative")
	}
	return nil
}

func validateLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return types.NewValidationError("link", "must be an absolute http(s) URL")
	}
	return nil
}

func validateDescriptors(field string, descriptors []NameInput) error {
	for _, d := range descriptors {
		if d.Name == "" {
			return types.NewValidationError(field, "names must not be empty")
		}
	}
	return nil
}

// CreateRecipe validates the input, reconciles nested tag and ingredient
// descriptors within a single transaction, and persists the recipe owned by
// the principal. Nothing is written when validation fails.
func CreateRecipe(db *gorm.DB, userID string, in RecipeInput) (*models.Recipe, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateTimeMinutes(in.TimeMinutes.Int()); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := validateLink(in.Link); err != nil {
		return nil, err
	}
	if err := validateDescriptors("tags", in.Tags); err != nil {
		return nil, err
	}
	if err := validateDescriptors("ingredients", in.Ingredients); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes.Int(),
		Price:       in.Price,
		Description: in.Description,
		Link:        in.Link,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		tags, err := ReconcileTags(tx, userID, in.Tags)
		if err != nil {
			return err
		}

		ingredients, err := ReconcileIngredients(tx, userID, in.Ingredients)
		if err != nil {
			return err
		}

		if err := tx.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		if len(ingredients) > 0 {
			if err := tx.Model(&recipe).Association("Ingredients").Append(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("recipe created",
		zap.Uint64("recipe_id", recipe.RecipeID),
		zap.String("user_id", userID),
	)

	return GetRecipe(db, userID, recipe.RecipeID)
}

// UpdateRecipe applies a partial update under ownership scoping. Reference
// set replacement and field updates commit together or not at all.
func UpdateRecipe(db *gorm.DB, userID string, recipeID uint64, in RecipeUpdateInput) (*models.Recipe, error) {
	updates := map[string]interface{}{}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		updates["title"] = *in.Title
	}
	if in.TimeMinutes != nil {
		if err := validateTimeMinutes(in.TimeMinutes.Int()); err != nil {
			return nil, err
		}
		updates["time_minutes"] = in.TimeMinutes.Int()
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		updates["price"] = *in.Price
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Link != nil {
		if err := validateLink(*in.Link); err != nil {
			return nil, err
		}
		updates["link"] = *in.Link
	}
	if in.Tags != nil {
		if err := validateDescriptors("tags", *in.Tags); err != nil {
			return nil, err
		}
	}
	if in.Ingredients != nil {
		if err := validateDescriptors("ingredients", *in.Ingredients); err != nil {
			return nil, err
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("recipe")
			}
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.Tags != nil {
			tags, err := ReconcileTags(tx, userID, *in.Tags)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				// Empty list clears the whole reference set.
				if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if in.Ingredients != nil {
			ingredients, err := ReconcileIngredients(tx, userID, *in.Ingredients)
			if err != nil {
				return err
			}
			if len(ingredients) == 0 {
				if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(db, userID, recipeID)
}

// DeleteRecipe removes the recipe and its join references. Tag and
// ingredient rows are independent of recipes and survive.
func DeleteRecipe(db *gorm.DB, userID string, recipeID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("recipe")
			}
			return err
		}

		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}
