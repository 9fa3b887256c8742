package routes

import (
	"github.com/gin-gonic/gin"

	"issueflow/internal/interfaces/http/handlers"
	"issueflow/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api gin.IRouter, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit(), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)

		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.POST("/password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)
		auth.POST("/profile", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.UpdateProfile)
	}
}
