package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterFriendRoutes registers the friendship endpoints.
func RegisterFriendRoutes(r *gin.Engine) {
	friendGroup := r.Group("/friend", middleware.JWTAuth())
	{
		friendGroup.POST("/add", handler.AddFriendHandler)
		friendGroup.POST("/delete", handler.DeleteFriendHandler)
		friendGroup.GET("/list", handler.GetFriendListHandler)
	}
}
