package services

import (
	"errors"

	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NameInput is a nested tag or ingredient descriptor on a recipe payload.
type NameInput struct {
	Name string `json:"name"`
}

// ReconcileTags resolves each descriptor, in input order, to a tag row owned
// by userID: an existing row with the exact same name is reused, anything
// else is created. Duplicate names in the input collapse to one reference.
//
// Must run inside the enclosing recipe transaction so partially created rows
// never outlive a failed recipe write. Two concurrent writers can both miss
// the lookup and race the insert; the unique (user_id, name) index rejects
// one of them, and the conflict-tolerant insert falls back to re-reading the
// winner's row.
func ReconcileTags(tx *gorm.DB, userID string, descriptors []NameInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(descriptors))
	seen := make(map[string]struct{}, len(descriptors))

	for _, d := range descriptors {
		if _, ok := seen[d.Name]; ok {
			continue
		}
		seen[d.Name] = struct{}{}

		var tag models.Tag
		err := tx.Where("user_id = ? AND name = ?", userID, d.Name).First(&tag).Error
		if err == nil {
			tags = append(tags, tag)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		tag = models.Tag{UserID: userID, Name: d.Name}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Unique-constraint race: another request created the row
			// between our lookup and insert. Reuse theirs. The conflict
			// must not raise a statement error, which would abort the
			// whole transaction on postgres; the locking read sees the
			// winner's commit even under repeatable-read snapshots.
			tag = models.Tag{}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND name = ?", userID, d.Name).
				First(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// ReconcileIngredients is the ingredient counterpart of ReconcileTags.
func ReconcileIngredients(tx *gorm.DB, userID string, descriptors []NameInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(descriptors))
	seen := make(map[string]struct{}, len(descriptors))

	for _, d := range descriptors {
		if _, ok := seen[d.Name]; ok {
			continue
		}
		seen[d.Name] = struct{}{}

		var ingredient models.Ingredient
		err := tx.Where("user_id = ? AND name = ?", userID, d.Name).First(&ingredient).Error
		if err == nil {
			ingredients = append(ingredients, ingredient)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		ingredient = models.Ingredient{UserID: userID, Name: d.Name}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			ingredient = models.Ingredient{}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND name = ?", userID, d.Name).
				First(&ingredient).Error; err != nil {
				return nil, err
			}
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}
