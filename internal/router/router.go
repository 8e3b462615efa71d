// Package router registers the HTTP routes, one file per module.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every module's route group onto the engine.
func RegisterRoutes(r *gin.Engine) {
	RegisterAuthRoutes(r)
	RegisterUserRoutes(r)
	RegisterFriendRoutes(r)
	RegisterChatRoutes(r)
	RegisterMessageRoutes(r)
	RegisterStoryRoutes(r)
	RegisterUploadRoutes(r)
	RegisterAIRoutes(r)
	RegisterWebSocketRoutes(r)
}
