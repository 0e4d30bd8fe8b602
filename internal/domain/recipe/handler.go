package recipe

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service  *Service
	pageSize int
}

func NewHandler(service *Service, pageSize int) *Handler {
	return &Handler{service: service, pageSize: pageSize}
}

// List handles GET /api/recipes
// Query: author, tags (repeatable or comma separated slugs), is_favorited,
// is_in_shopping_cart, page, limit.
func (h *Handler) List(c *gin.Context) {
	q := ListQuery{TagSlugs: tagSlugs(c)}
	if author, err := strconv.ParseInt(c.Query("author"), 10, 64); err == nil && author > 0 {
		q.AuthorID = author
	}
	if v, ok := utils.ParseBoolQuery(c, "is_favorited"); ok {
		q.Favorited = &v
	}
	if v, ok := utils.ParseBoolQuery(c, "is_in_shopping_cart"); ok {
		q.InCart = &v
	}

	page, err := h.service.List(c.Request.Context(), middleware.UserID(c), q, pagination.FromQuery(c, h.pageSize))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Create handles POST /api/recipes
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Get handles GET /api/recipes/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	rec, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Update handles PATCH /api/recipes/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/recipes/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func tagSlugs(c *gin.Context) []string {
	var slugs []string
	for _, raw := range c.QueryArray("tags") {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				slugs = append(slugs, slug)
			}
		}
	}
	return slugs
}
