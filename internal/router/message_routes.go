package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes registers history and status endpoints.
func RegisterMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/message", middleware.JWTAuth())
	{
		messageGroup.GET("/list", handler.GetMessageListHandler)
		messageGroup.POST("/delivered", handler.MarkDeliveredHandler)
		messageGroup.POST("/read", handler.MarkReadHandler)
	}
}
