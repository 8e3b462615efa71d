package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pigeon_chat_server/internal/config"
	"pigeon_chat_server/internal/dao/db"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/handler"
	"pigeon_chat_server/internal/http_server"
	"pigeon_chat_server/internal/infrastructure/ai"
	"pigeon_chat_server/internal/infrastructure/logger"
	"pigeon_chat_server/internal/service"
	"pigeon_chat_server/internal/service/realtime"
	"pigeon_chat_server/pkg/util/jwt"
	"pigeon_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger ready")

	snowflake.Init(conf.SnowflakeConfig.MachineID)

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)

	repos := db.Init()
	zap.L().Info("database ready", zap.String("driver", conf.StorageConfig.Driver))

	var cache myredis.AsyncCacheService
	if conf.StorageConfig.Driver == "sqlite" {
		// Offline demo mode runs without a redis instance.
		cache = myredis.NewMemoryCache()
	} else {
		myredis.Init()
		cache = myredis.GetCacheService()
	}
	myredis.SetCacheService(cache)
	zap.L().Info("cache ready")

	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	completer := ai.NewClient(&conf.AIConfig)
	service.InitServices(repos, cache, completer, conf.StoryTTL(), time.Duration(conf.StoryConfig.SweepIntervalMinutes)*time.Minute)
	zap.L().Info("services ready")

	if conf.KafkaConfig.MessageMode == "kafka" {
		realtime.GlobalBroker = realtime.NewKafkaBroker(repos, cache)
	} else {
		realtime.GlobalBroker = realtime.NewChannelBroker(repos, cache)
	}
	go realtime.GlobalBroker.Start()
	zap.L().Info("broker ready", zap.String("mode", conf.KafkaConfig.MessageMode))

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go service.Svc.Story.StartSweeper(sweepCtx)

	engine := http_server.Init()
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()
	zap.L().Info("server listening", zap.String("host", conf.MainConfig.Host), zap.Int("port", conf.MainConfig.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopSweeper()
	realtime.GlobalBroker.Close()
	zap.L().Info("server shut down")
}
