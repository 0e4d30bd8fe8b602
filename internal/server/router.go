package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/domain/cart"
	"foodgram/internal/domain/favorite"
	"foodgram/internal/domain/follow"
	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	"foodgram/internal/pkg/cache"
	"foodgram/internal/pkg/imagestore"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/response"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Cache  cache.Cache
	Images *imagestore.Store
	JWT    *jwt.Service
	// RateLimiter is optional; nil disables per-IP limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := d.Cache
	if c == nil {
		c = cache.Noop{}
	}

	r := gin.New()
	r.Use(
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Handler())
	}

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(cfg.MediaURL, cfg.MediaDir)

	requireAuth := middleware.JWTAuth(d.JWT)
	optionalAuth := middleware.OptionalAuth(d.JWT)

	// repositories
	userRepo := user.NewRepository(d.DB)
	tagRepo := tag.NewRepository(d.DB)
	ingredientRepo := ingredient.NewRepository(d.DB)
	recipeRepo := recipe.NewRepository(d.DB)
	followRepo := follow.NewRepository(d.DB)
	favoriteRepo := favorite.NewRepository(d.DB)
	cartRepo := cart.NewRepository(d.DB)

	// services
	userService := user.NewService(userRepo, followRepo, d.JWT)
	tagService := tag.NewService(tagRepo, c, cfg.CacheTTL, log)
	ingredientService := ingredient.NewService(ingredientRepo, c, cfg.CacheTTL, log)
	recipeService := recipe.NewService(recipeRepo, d.Images, favoriteRepo, cartRepo, followRepo, log)
	followService := follow.NewService(followRepo, userRepo, recipeRepo)
	favoriteService := favorite.NewService(favoriteRepo, recipeRepo)
	cartService := cart.NewService(cartRepo, recipeRepo)

	api := r.Group("/api")
	user.RegisterRoutes(api, user.NewHandler(userService, cfg.PageSize), requireAuth, optionalAuth)
	follow.RegisterRoutes(api, follow.NewHandler(followService, cfg.PageSize, cfg.SubscriptionRecipesLimit), requireAuth)
	tag.RegisterRoutes(api, tag.NewHandler(tagService))
	ingredient.RegisterRoutes(api, ingredient.NewHandler(ingredientService))
	recipe.RegisterRoutes(api, recipe.NewHandler(recipeService, cfg.PageSize), requireAuth, optionalAuth)
	favorite.RegisterRoutes(api, favorite.NewHandler(favoriteService), requireAuth)
	cart.RegisterRoutes(api, cart.NewHandler(cartService), requireAuth)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}
