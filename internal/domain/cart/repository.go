package cart

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/pkg/dberr"
)

type Repository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Contains(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	Scope(userID int64, include bool) recipe.Scope
	// Lines returns every composition edge of the recipes in the user's cart,
	// ordered by cart insertion and then by edge insertion.
	Lines(ctx context.Context, userID int64) ([]Line, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&CartItem{UserID: userID, RecipeID: recipeID}).Error
	switch {
	case dberr.IsUniqueViolation(err):
		return ErrAlreadyInCart
	case dberr.IsForeignKeyViolation(err):
		return recipe.ErrRecipeNotFound
	}
	return err
}

func (r *repository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

func (r *repository) Contains(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&CartItem{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *repository) Scope(userID int64, include bool) recipe.Scope {
	return func(db *gorm.DB) *gorm.DB {
		carted := db.Session(&gorm.Session{NewDB: true}).
			Model(&CartItem{}).
			Select("recipe_id").
			Where("user_id = ?", userID)
		if include {
			return db.Where("recipes.id IN (?)", carted)
		}
		return db.Where("recipes.id NOT IN (?)", carted)
	}
}

func (r *repository) Lines(ctx context.Context, userID int64) ([]Line, error) {
	var lines []Line
	err := r.db.WithContext(ctx).
		Model(&CartItem{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Order("recipe_ingredients.id ASC").
		Scan(&lines).Error
	return lines, err
}
