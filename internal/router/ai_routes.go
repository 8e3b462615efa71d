package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the completion-API proxy endpoints.
func RegisterAIRoutes(r *gin.Engine) {
	aiGroup := r.Group("/ai", middleware.JWTAuth())
	{
		aiGroup.POST("/suggest-replies", handler.SuggestRepliesHandler)
		aiGroup.POST("/translate", handler.TranslateHandler)
		aiGroup.POST("/summarize", handler.SummarizeHandler)
	}
}
