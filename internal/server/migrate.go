package server

import (
	"gorm.io/gorm"

	"foodgram/internal/domain/cart"
	"foodgram/internal/domain/favorite"
	"foodgram/internal/domain/follow"
	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&tag.Tag{},
		&ingredient.Ingredient{},
		&recipe.Recipe{},
		&recipe.RecipeIngredient{},
		&follow.Follow{},
		&favorite.Favorite{},
		&cart.CartItem{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
