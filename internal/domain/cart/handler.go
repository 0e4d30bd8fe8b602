package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

const shoppingListFilename = "shopping_list.txt"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Add handles POST /api/recipes/:id/shopping_cart
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

// Remove handles DELETE /api/recipes/:id/shopping_cart
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

// Download handles GET /api/recipes/download_shopping_cart
func (h *Handler) Download(c *gin.Context) {
	items, err := h.service.ShoppingList(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(Format(items)))
}
