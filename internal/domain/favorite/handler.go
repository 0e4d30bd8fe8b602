package favorite

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Add handles POST /api/recipes/:id/favorite
func (h *Handler) Add(c *gin.Context) {
	recipeID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	summary, err := h.service.Add(c.Request.Context(), middleware.UserID(c), recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, summary)
}

// Remove handles DELETE /api/recipes/:id/favorite
func (h *Handler) Remove(c *gin.Context) {
	recipeID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), recipeID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
