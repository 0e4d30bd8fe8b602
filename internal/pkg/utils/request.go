package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/validator"
)

var (
	ErrInvalidJSON      = apperr.Validation("INVALID_JSON", "Invalid JSON body")
	ErrValidationFailed = apperr.Validation("VALIDATION_ERROR", "Request validation failed")
	ErrInvalidID        = apperr.Validation("INVALID_ID", "Invalid id")
)

// BindJSON decodes the request body into dst and runs struct validation.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ErrInvalidJSON
	}
	if errs := validator.Validate(dst); errs != nil {
		return ErrValidationFailed.WithDetails(errs)
	}
	return nil
}

// ParseIDParam reads a positive int64 path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID.WithMessage("Invalid %s", name)
	}
	return id, nil
}

// ParseBoolQuery interprets 1/true and 0/false. ok is false when the
// parameter is absent or holds anything else.
func ParseBoolQuery(c *gin.Context, name string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	default:
		return false, false
	}
}

// ParseIntQuery returns the integer query parameter or fallback when absent or malformed.
func ParseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
