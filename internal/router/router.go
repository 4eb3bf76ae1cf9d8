package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/websopen/web-valencio/internal/config"
	"github.com/websopen/web-valencio/internal/handler"
	"github.com/websopen/web-valencio/internal/middleware"
	"github.com/websopen/web-valencio/internal/response"
	"github.com/websopen/web-valencio/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth  *handler.AuthHandler
	Store *handler.StoreHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// Session cookies require credentials, which gin-contrib/cors forbids
	// together with a wildcard origin. With no configured origins the API
	// is assumed same-origin and falls back to credential-less allow-all.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP) —
	// keeps 4-digit PIN guessing impractical.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	api := router.Group("/api")

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/validate-token", handlers.Auth.ValidateToken)
		auth.POST("/activate", handlers.Auth.Activate)
		auth.GET("/check", handlers.Auth.Check)
	}

	// Hub entry and logout redirects.
	api.GET("/hub-login", authLimiter.Middleware(), handlers.Auth.HubLogin)
	api.GET("/logout", handlers.Auth.Logout)

	// ─── 2. Store Group ────────────────────────────────────────────────
	store := api.Group("/store")
	{
		// Read paths are public: the storefront must render for guests.
		store.GET("/data", handlers.Store.GetData)
		store.GET("/catalog", handlers.Store.GetCatalog)

		// The batch save is the only mutating endpoint; session-gated.
		store.POST("/settings",
			middleware.RequireAdminSession(authService),
			handlers.Store.SaveSettings,
		)
	}

	return router
}
