package redis

import (
	"strconv"

	"pigeon_chat_server/internal/config"

	"github.com/redis/go-redis/v9"
)

var cacheService AsyncCacheService

// Init connects to redis and builds the shared cache service.
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.Db,
		PoolSize:     50,
		MinIdleConns: 15,
	})

	cacheService = NewRedisCache(client, 15, 3000)
}

// GetCacheService returns the shared AsyncCacheService for injection
// into the service layer.
func GetCacheService() AsyncCacheService {
	return cacheService
}

// SetCacheService overrides the shared instance; used by demo mode and
// tests to plug in a non-redis implementation.
func SetCacheService(cs AsyncCacheService) {
	cacheService = cs
}
