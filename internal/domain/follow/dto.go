package follow

import (
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
)

// AuthorResponse is a followed author with a preview of their recipes.
type AuthorResponse struct {
	user.Response
	Recipes      []recipe.Summary `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}
