package tag

import "foodgram/internal/pkg/apperr"

var ErrTagNotFound = apperr.NotFound("TAG_NOT_FOUND", "tag not found")
