package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const MaxLimit = 100

// MaxPage keeps Offset within int for every accepted limit.
const MaxPage = math.MaxInt/MaxLimit + 1

type Params struct {
	Page  int
	Limit int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FromQuery reads ?page= and ?limit=, falling back to page 1 and defaultLimit.
func FromQuery(c *gin.Context, defaultLimit int) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = defaultLimit
	}
	return Params{Page: page, Limit: limit}
}

type Page[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(total) / p.Limit
		if int(total)%p.Limit > 0 {
			totalPages++
		}
	}

	return Page[T]{
		Count:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		Results:    items,
	}
}
