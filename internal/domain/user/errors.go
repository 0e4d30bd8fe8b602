package user

import "foodgram/internal/pkg/apperr"

var (
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "user not found")
	ErrEmailTaken         = apperr.Conflict("EMAIL_TAKEN", "a user with this email already exists")
	ErrUsernameTaken      = apperr.Conflict("USERNAME_TAKEN", "a user with this username already exists")
	ErrUserExists         = apperr.Conflict("USER_EXISTS", "a user with these credentials already exists")
	ErrReservedUsername   = apperr.Validation("RESERVED_USERNAME", `username "me" is reserved`)
	ErrInvalidCredentials = apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
	ErrWrongPassword      = apperr.Validation("WRONG_PASSWORD", "current password is incorrect")
)
