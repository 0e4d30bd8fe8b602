package favorite

import (
	"time"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
)

// Favorite marks a recipe as favorited by a user. At most one row per pair.
type Favorite struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    int64          `gorm:"not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  int64          `gorm:"not null;index;uniqueIndex:idx_favorites_user_recipe"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	User      *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *recipe.Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Favorite) TableName() string {
	return "favorites"
}
