package cart

import (
	"time"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
)

// CartItem puts a recipe into a user's shopping cart. At most one row per pair;
// IDs follow insertion order, which fixes the shopping list order.
type CartItem struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    int64          `gorm:"not null;uniqueIndex:idx_cart_items_user_recipe"`
	RecipeID  int64          `gorm:"not null;index;uniqueIndex:idx_cart_items_user_recipe"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	User      *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *recipe.Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
