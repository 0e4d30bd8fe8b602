package recipe

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireAuth, optionalAuth gin.HandlerFunc) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", optionalAuth, h.List)
		recipes.POST("", requireAuth, h.Create)
		recipes.GET("/:id", optionalAuth, h.Get)
		recipes.PATCH("/:id", requireAuth, h.Update)
		recipes.DELETE("/:id", requireAuth, h.Delete)
	}
}
