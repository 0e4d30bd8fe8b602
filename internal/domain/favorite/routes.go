package favorite

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireAuth gin.HandlerFunc) {
	favorites := r.Group("/recipes/:id/favorite", requireAuth)
	{
		favorites.POST("", h.Add)
		favorites.DELETE("", h.Remove)
	}
}
