package service

import (
	"time"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/infrastructure/ai"
	aisvc "pigeon_chat_server/internal/service/ai"
	"pigeon_chat_server/internal/service/chat"
	"pigeon_chat_server/internal/service/friend"
	"pigeon_chat_server/internal/service/message"
	"pigeon_chat_server/internal/service/story"
	"pigeon_chat_server/internal/service/user"
)

// Services aggregates all service instances; handlers reach them via
// service.Svc.
type Services struct {
	User    UserService
	Friend  FriendService
	Chat    ChatService
	Message MessageService
	Story   StoryService
	AI      AIService
}

// NewServices wires the services onto the repository aggregate, cache
// and completion client.
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, completer ai.Completer, storyTTL, sweepInterval time.Duration) *Services {
	messageSvc := message.NewMessageService(repos, cache)
	return &Services{
		User:    user.NewUserService(repos, cache),
		Friend:  friend.NewFriendService(repos, cache),
		Chat:    chat.NewChatService(repos, cache),
		Message: messageSvc,
		Story:   story.NewStoryService(repos, storyTTL, sweepInterval),
		AI:      aisvc.NewAIService(repos, completer),
	}
}

// Svc is the global aggregate, set once in main.
var Svc *Services

// InitServices initializes Svc. Call after the repositories and cache
// are up.
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService, completer ai.Completer, storyTTL, sweepInterval time.Duration) {
	Svc = NewServices(repos, cache, completer, storyTTL, sweepInterval)
}
