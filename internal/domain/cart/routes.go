package cart

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireAuth gin.HandlerFunc) {
	r.GET("/recipes/download_shopping_cart", requireAuth, h.Download)

	cart := r.Group("/recipes/:id/shopping_cart", requireAuth)
	{
		cart.POST("", h.Add)
		cart.DELETE("", h.Remove)
	}
}
