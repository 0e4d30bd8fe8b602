package favorite

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
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Add relies on the unique index: a concurrent duplicate loses with ErrAlreadyFavorited.
func (r *repository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&Favorite{UserID: userID, RecipeID: recipeID}).Error
	switch {
	case dberr.IsUniqueViolation(err):
		return ErrAlreadyFavorited
	case dberr.IsForeignKeyViolation(err):
		return recipe.ErrRecipeNotFound
	}
	return err
}

func (r *repository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorited
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
		Model(&Favorite{}).
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
		favorited := db.Session(&gorm.Session{NewDB: true}).
			Model(&Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", userID)
		if include {
			return db.Where("recipes.id IN (?)", favorited)
		}
		return db.Where("recipes.id NOT IN (?)", favorited)
	}
}
