package router

import (
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers profile and presence endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user", middleware.JWTAuth())
	{
		userGroup.GET("/search", handler.SearchUsersHandler)
		userGroup.GET("/:uuid", handler.GetUserInfoHandler)
		userGroup.POST("/update", handler.UpdateUserInfoHandler)
		userGroup.POST("/status", handler.UpdateStatusHandler)
	}
}
