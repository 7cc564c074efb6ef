package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tag is a per-user recipe label. The composite unique index on
// (user_id, name) is what settles the concurrent find-or-create race.
type Tag struct {
	TagID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index:idx_tag_owner_name,unique"`
	Name      string `gorm:"size:255;not null;index:idx_tag_owner_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ingredient has the same shape and ownership rules as Tag, but a recipe
// tracks its tag set and ingredient set independently.
type Ingredient struct {
	IngredientID uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"type:char(36);not null;index:idx_ingredient_owner_name,unique"`
	Name         string `gorm:"size:255;not null;index:idx_ingredient_owner_name,unique"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Recipe belongs to exactly one user. Referenced tags and ingredients are
// always rows owned by the same user; the services never attach a row across
// owners.
type Recipe struct {
	RecipeID    uint64          `gorm:"primaryKey;autoIncrement"`
	UserID      string          `gorm:"type:char(36);not null;index"`
	Title       string          `gorm:"size:255;not null"`
	TimeMinutes int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Description string          `gorm:"type:text"`
	Link        string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []Tag        `gorm:"many2many:recipe_tags;joinForeignKey:recipe_id;joinReferences:tag_id"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;joinForeignKey:recipe_id;joinReferences:ingredient_id"`
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}
