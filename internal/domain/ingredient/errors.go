package ingredient

import "foodgram/internal/pkg/apperr"

var ErrIngredientNotFound = apperr.NotFound("INGREDIENT_NOT_FOUND", "ingredient not found")
