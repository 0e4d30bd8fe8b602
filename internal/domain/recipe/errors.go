package recipe

import "foodgram/internal/pkg/apperr"

var (
	ErrRecipeNotFound      = apperr.NotFound("RECIPE_NOT_FOUND", "recipe not found")
	ErrNotAuthor           = apperr.Forbidden("NOT_RECIPE_AUTHOR", "only the author can change this recipe")
	ErrInvalidAmount       = apperr.Validation("INVALID_AMOUNT", "amount must be greater than 0")
	ErrDuplicateIngredient = apperr.Validation("DUPLICATE_INGREDIENT", "each ingredient may appear only once")
	ErrInvalidCookingTime  = apperr.Validation("INVALID_COOKING_TIME", "cooking_time must be at least 1")
	ErrImageRequired       = apperr.Validation("IMAGE_REQUIRED", "image is required")
	ErrTagsRequired        = apperr.Validation("TAGS_REQUIRED", "at least one tag is required")
)
