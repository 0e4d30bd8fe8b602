package follow

import "foodgram/internal/pkg/apperr"

var (
	ErrSelfSubscription  = apperr.Validation("SELF_SUBSCRIPTION", "you cannot subscribe to yourself")
	ErrAlreadySubscribed = apperr.Conflict("ALREADY_SUBSCRIBED", "you are already subscribed to this author")
	ErrNotSubscribed     = apperr.NotFound("NOT_SUBSCRIBED", "you are not subscribed to this author")
)
