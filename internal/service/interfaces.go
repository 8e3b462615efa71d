// Package service defines the business layer interfaces consumed by
// the handlers. Interfaces keep the handlers testable against stubs.
package service

import (
	"context"

	"github.com/gin-gonic/gin"

	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
)

// UserService covers accounts, profiles and presence.
type UserService interface {
	// Register creates an account and logs it in.
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login authenticates with username/password.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken trades a valid refresh token for a new access token.
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// GetUserInfo returns the public profile with the presence overlay.
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// UpdateUserInfo applies non-empty profile fields.
	UpdateUserInfo(req request.UpdateUserInfoRequest) error
	// UpdateStatus sets the presence value (cache + column).
	UpdateStatus(req request.UpdateStatusRequest) error
	// SearchUsers matches usernames by substring, excluding the caller.
	SearchUsers(req request.SearchUsersRequest) ([]respond.FriendListRespond, error)
}

// FriendService maintains symmetric friendships.
type FriendService interface {
	// AddFriend inserts both direction rows in one transaction.
	AddFriend(req request.AddFriendRequest) error
	// DeleteFriend removes both direction rows in one transaction.
	DeleteFriend(req request.DeleteFriendRequest) error
	// GetFriendList lists the caller's friends with presence overlays.
	GetFriendList(ownerId string) ([]respond.FriendListRespond, error)
}

// ChatService covers direct and group conversations.
type ChatService interface {
	// CreateChat creates a group chat with its initial members.
	CreateChat(req request.CreateChatRequest) (string, error)
	// OpenDirectChat finds or creates the direct chat with a peer.
	OpenDirectChat(req request.OpenDirectChatRequest) (string, error)
	// GetChatList lists the caller's chats, newest activity first.
	GetChatList(ownerId string) ([]respond.ChatListRespond, error)
	// GetChatDetail returns one chat with member profiles; members only.
	GetChatDetail(ownerId, chatUuid string) (*respond.ChatDetailRespond, error)
	// LeaveChat removes the caller from a chat.
	LeaveChat(req request.LeaveChatRequest) error
}

// MessageService covers history reads and status transitions.
type MessageService interface {
	// GetMessageList returns a chat's history, cache-aside.
	GetMessageList(req request.GetMessageListRequest) ([]respond.GetMessageListRespond, error)
	// MarkDelivered advances statuses below delivered for the reader.
	MarkDelivered(req request.MarkReadRequest) error
	// MarkRead advances statuses below read for the reader.
	MarkRead(req request.MarkReadRequest) error
	// UploadAvatar stores one image into the avatar static dir.
	UploadAvatar(c *gin.Context) (string, error)
	// UploadFile stores attachments into the file static dir.
	UploadFile(c *gin.Context) ([]string, error)
	// UploadStoryMedia stores one image into the story static dir.
	UploadStoryMedia(c *gin.Context) (string, error)
}

// StoryService covers ephemeral posts and their TTL sweep.
type StoryService interface {
	// CreateStory posts a story for the owner.
	CreateStory(req request.CreateStoryRequest) (string, error)
	// GetActiveStories sweeps expired rows, then lists the survivors.
	GetActiveStories() ([]respond.StoryListRespond, error)
	// DeleteStory removes the caller's own story.
	DeleteStory(req request.DeleteStoryRequest) error
	// SweepExpired deletes stories older than the TTL and returns the
	// removed count.
	SweepExpired() (int64, error)
	// StartSweeper runs SweepExpired on an interval until ctx ends.
	StartSweeper(ctx context.Context)
}

// AIService proxies the completion API.
type AIService interface {
	// SuggestReplies proposes short replies to a chat's recent history.
	SuggestReplies(ctx context.Context, req request.SuggestRepliesRequest) (*respond.SuggestRepliesRespond, error)
	// Translate renders text into the target language.
	Translate(ctx context.Context, req request.TranslateRequest) (*respond.TranslateRespond, error)
	// Summarize condenses a chat's recent history.
	Summarize(ctx context.Context, req request.SummarizeRequest) (*respond.SummarizeRespond, error)
}
