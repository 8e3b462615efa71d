package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUploadRoutes registers the static upload endpoints.
func RegisterUploadRoutes(r *gin.Engine) {
	uploadGroup := r.Group("/upload", middleware.JWTAuth())
	{
		uploadGroup.POST("/avatar", handler.UploadAvatarHandler)
		uploadGroup.POST("/file", handler.UploadFileHandler)
		uploadGroup.POST("/story", handler.UploadStoryMediaHandler)
	}
}
