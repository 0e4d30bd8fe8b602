package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts account and profile endpoints. requireAuth rejects
// anonymous callers; optionalAuth only identifies them.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireAuth, optionalAuth gin.HandlerFunc) {
	auth := r.Group("/auth/token")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", requireAuth, h.Logout)
	}

	users := r.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", optionalAuth, h.List)
		users.GET("/me", requireAuth, h.Me)
		users.POST("/set_password", requireAuth, h.SetPassword)
		users.GET("/:id", optionalAuth, h.Get)
	}
}
