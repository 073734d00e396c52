package routes

import (
	"vistoria/internal/handlers"
	"vistoria/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up authentication and profile routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	profile := r.Group("/auth")
	profile.Use(middleware.AuthRequired(jwtSecret))
	{
		profile.GET("/profile", authHandler.Profile)
	}
}
