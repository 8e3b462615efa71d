package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversation endpoints.
func RegisterChatRoutes(r *gin.Engine) {
	chatGroup := r.Group("/chat", middleware.JWTAuth())
	{
		chatGroup.POST("/create", handler.CreateChatHandler)
		chatGroup.POST("/open", handler.OpenDirectChatHandler)
		chatGroup.GET("/list", handler.GetChatListHandler)
		chatGroup.GET("/:uuid", handler.GetChatDetailHandler)
		chatGroup.POST("/leave", handler.LeaveChatHandler)
	}
}
