package router

import (
	"pigeon_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the unauthenticated account endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handler.RegisterHandler)
		authGroup.POST("/login", handler.LoginHandler)
		authGroup.POST("/refresh", handler.RefreshTokenHandler)
	}
}
