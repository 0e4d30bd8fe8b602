package cart

import "foodgram/internal/pkg/apperr"

var (
	ErrAlreadyInCart = apperr.Conflict("ALREADY_IN_CART", "recipe is already in the shopping cart")
	ErrNotInCart     = apperr.NotFound("NOT_IN_CART", "recipe is not in the shopping cart")
)
