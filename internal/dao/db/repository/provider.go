package repository

import "gorm.io/gorm"

// Repositories aggregates all repository instances. The service layer
// receives this as its single data dependency.
type Repositories struct {
	db         *gorm.DB
	User       UserRepository
	Chat       ChatRepository
	ChatMember ChatMemberRepository
	Message    MessageRepository
	Friend     FriendRepository
	Story      StoryRepository
}

// NewRepositories builds the aggregate around one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		User:       NewUserRepository(db),
		Chat:       NewChatRepository(db),
		ChatMember: NewChatMemberRepository(db),
		Message:    NewMessageRepository(db),
		Friend:     NewFriendRepository(db),
		Story:      NewStoryRepository(db),
	}
}

// Transaction runs fn against a transactional Repositories view; any
// error rolls the whole batch back.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
