// Package repository holds the per-entity data access interfaces and
// their gorm implementations.
package repository

import (
	"time"

	"pigeon_chat_server/internal/model"
)

// UserRepository accesses user_info rows.
type UserRepository interface {
	Create(user *model.UserInfo) error
	Update(user *model.UserInfo) error
	FindByUuid(uuid string) (*model.UserInfo, error)
	FindByUsername(username string) (*model.UserInfo, error)
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Search matches usernames by substring, excluding the caller.
	Search(term, excludeUuid string) ([]model.UserInfo, error)
	UpdateStatus(uuid, status string) error
}

// ChatRepository accesses chat rows.
type ChatRepository interface {
	Create(chat *model.Chat) error
	Update(chat *model.Chat) error
	FindByUuid(uuid string) (*model.Chat, error)
	FindByUuids(uuids []string) ([]model.Chat, error)
	// FindDirectBetween returns the existing non-group chat containing
	// exactly the two users, or a CodeNotFound error.
	FindDirectBetween(userOne, userTwo string) (*model.Chat, error)
	UpdateLastMessage(chatUuid, text string, at time.Time) error
	SoftDelete(uuid string) error
}

// ChatMemberRepository accesses chat_member rows.
type ChatMemberRepository interface {
	Create(member *model.ChatMember) error
	CreateBatch(members []model.ChatMember) error
	FindByChatUuid(chatUuid string) ([]model.ChatMember, error)
	FindChatUuidsByUser(userUuid string) ([]string, error)
	Delete(chatUuid, userUuid string) error
	IsMember(chatUuid, userUuid string) (bool, error)
}

// MessageRepository accesses message rows.
type MessageRepository interface {
	Create(message *model.Message) error
	FindByChatUuid(chatUuid string) ([]model.Message, error)
	UpdateStatus(uuid int64, status int8) error
	// AdvanceChatStatus raises the status of all messages in a chat that
	// were not sent by reader and currently sit below the target.
	AdvanceChatStatus(chatUuid, reader string, status int8) error
}

// FriendRepository accesses friend rows.
type FriendRepository interface {
	Create(friend *model.Friend) error
	Delete(ownerId, friendId string) error
	FindByOwner(ownerId string) ([]model.Friend, error)
	Exists(ownerId, friendId string) (bool, error)
}

// StoryRepository accesses story rows.
type StoryRepository interface {
	Create(story *model.Story) error
	FindActive(cutoff time.Time) ([]model.Story, error)
	FindByUuid(uuid string) (*model.Story, error)
	DeleteByUuid(uuid string) error
	// SweepExpired hard-deletes stories created before cutoff and
	// returns the number of rows removed.
	SweepExpired(cutoff time.Time) (int64, error)
}
