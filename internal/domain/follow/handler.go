package follow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service      *Service
	pageSize     int
	recipesLimit int
}

func NewHandler(service *Service, pageSize, recipesLimit int) *Handler {
	return &Handler{service: service, pageSize: pageSize, recipesLimit: recipesLimit}
}

// Subscribe handles POST /api/users/:id/subscribe?recipes_limit=
func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	author, err := h.service.Subscribe(c.Request.Context(), middleware.UserID(c), authorID, utils.ParseIntQuery(c, "recipes_limit", h.recipesLimit))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, author)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.UserID(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions handles GET /api/users/subscriptions?page=&limit=&recipes_limit=
func (h *Handler) Subscriptions(c *gin.Context) {
	page, err := h.service.Subscriptions(
		c.Request.Context(),
		middleware.UserID(c),
		utils.ParseIntQuery(c, "recipes_limit", h.recipesLimit),
		pagination.FromQuery(c, h.pageSize),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}
