package favorite

import "foodgram/internal/pkg/apperr"

var (
	ErrAlreadyFavorited = apperr.Conflict("ALREADY_FAVORITED", "recipe is already in favorites")
	ErrNotFavorited     = apperr.NotFound("NOT_FAVORITED", "recipe is not in favorites")
)
