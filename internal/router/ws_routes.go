package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the realtime gateway endpoints.
func RegisterWebSocketRoutes(r *gin.Engine) {
	wsGroup := r.Group("/ws", middleware.JWTAuth())
	{
		wsGroup.GET("/login", handler.WsLoginHandler)
		wsGroup.POST("/logout", handler.WsLogoutHandler)
	}
}
