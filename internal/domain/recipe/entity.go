package recipe

import (
	"time"

	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
)

type Recipe struct {
	ID          int64              `gorm:"primaryKey"`
	AuthorID    int64              `gorm:"not null;index"`
	Author      *user.User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Name        string             `gorm:"size:200;not null"`
	Image       string             `gorm:"size:500;not null"`
	Text        string             `gorm:"type:text;not null"`
	CookingTime int                `gorm:"not null"`
	PubDate     time.Time          `gorm:"not null;index"`
	Tags        []tag.Tag          `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeTag is a row of the recipe_tags join table.
type RecipeTag struct {
	RecipeID int64 `gorm:"primaryKey"`
	TagID    int64 `gorm:"primaryKey"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// RecipeIngredient is a composition edge: one ingredient with its amount.
// Edges are ordered by ID, which follows insertion order.
type RecipeIngredient struct {
	ID           int64                  `gorm:"primaryKey"`
	RecipeID     int64                  `gorm:"not null;index"`
	IngredientID int64                  `gorm:"not null;index"`
	Ingredient   *ingredient.Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Amount       int                    `gorm:"not null"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
