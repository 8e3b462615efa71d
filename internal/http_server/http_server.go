// Package http_server builds the gin engine: middleware, CORS, static
// mounts and routes.
package http_server

import (
	"pigeon_chat_server/internal/config"
	"pigeon_chat_server/internal/infrastructure/logger"
	"pigeon_chat_server/internal/infrastructure/middleware"
	"pigeon_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init returns the configured engine. Middleware order: logging,
// recovery, CORS, optional TLS redirect, then static mounts and routes.
func Init() *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	cfg := config.GetConfig()
	if cfg.MainConfig.TLSRedirect {
		engine.Use(middleware.TlsHandler(cfg.MainConfig.Host, cfg.MainConfig.Port))
	}

	engine.Static("/static/avatars", cfg.StaticAvatarPath)
	engine.Static("/static/files", cfg.StaticFilePath)
	engine.Static("/static/stories", cfg.StaticStoryPath)

	router.RegisterRoutes(engine)

	return engine
}
