package recipe

import (
	"time"

	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
)

// IngredientEntry references a catalog ingredient with the amount used.
type IngredientEntry struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int   `json:"amount"`
}

type CreateRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required"`
	Image       string            `json:"image"`
	CookingTime int               `json:"cooking_time"`
	Tags        []int64           `json:"tags" validate:"required"`
	Ingredients []IngredientEntry `json:"ingredients" validate:"required,dive"`
}

// UpdateRequest changes only the scalar fields that are present. Tags and
// ingredients are mandatory and replace the previous sets.
type UpdateRequest struct {
	Name        *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Text        *string           `json:"text" validate:"omitempty,min=1"`
	Image       *string           `json:"image" validate:"omitempty,min=1"`
	CookingTime *int              `json:"cooking_time"`
	Tags        []int64           `json:"tags" validate:"required"`
	Ingredients []IngredientEntry `json:"ingredients" validate:"required,dive"`
}

type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type Response struct {
	ID               int64              `json:"id"`
	Tags             []tag.Tag          `json:"tags"`
	Author           user.Response      `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	PubDate          time.Time          `json:"pub_date"`
}

// Summary is the short form returned by membership and subscription endpoints.
type Summary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ListQuery holds the recipe list filters. Favorited and InCart are nil
// when the filter is not requested.
type ListQuery struct {
	AuthorID  int64
	TagSlugs  []string
	Favorited *bool
	InCart    *bool
}
