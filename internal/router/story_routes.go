package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterStoryRoutes registers the ephemeral post endpoints.
func RegisterStoryRoutes(r *gin.Engine) {
	storyGroup := r.Group("/story", middleware.JWTAuth())
	{
		storyGroup.POST("/create", handler.CreateStoryHandler)
		storyGroup.GET("/list", handler.GetActiveStoriesHandler)
		storyGroup.POST("/delete", handler.DeleteStoryHandler)
	}
}
