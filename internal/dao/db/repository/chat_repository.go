package repository

import (
	"time"

	"pigeon_chat_server/internal/model"

	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates the chat repository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(chat *model.Chat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return wrapDBError(err, "create chat")
	}
	return nil
}

func (r *chatRepository) Update(chat *model.Chat) error {
	if err := r.db.Save(chat).Error; err != nil {
		return wrapDBError(err, "update chat")
	}
	return nil
}

func (r *chatRepository) FindByUuid(uuid string) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.Where("uuid = ?", uuid).First(&chat).Error; err != nil {
		return nil, wrapDBErrorf(err, "find chat uuid=%s", uuid)
	}
	return &chat, nil
}

func (r *chatRepository) FindByUuids(uuids []string) ([]model.Chat, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var chats []model.Chat
	if err := r.db.Where("uuid IN ?", uuids).
		Order("last_message_at DESC").Find(&chats).Error; err != nil {
		return nil, wrapDBError(err, "find chats by uuids")
	}
	return chats, nil
}

func (r *chatRepository) FindDirectBetween(userOne, userTwo string) (*model.Chat, error) {
	// A direct chat is a non-group chat whose member set contains both
	// users. The member count guard rules out group chats that happen to
	// include the pair.
	var chat model.Chat
	err := r.db.
		Where("is_group = ? AND uuid IN (?)", false,
			r.db.Model(&model.ChatMember{}).
				Select("chat_uuid").
				Where("user_uuid IN ?", []string{userOne, userTwo}).
				Group("chat_uuid").
				Having("COUNT(DISTINCT user_uuid) = 2"),
		).
		First(&chat).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find direct chat %s/%s", userOne, userTwo)
	}
	return &chat, nil
}

func (r *chatRepository) UpdateLastMessage(chatUuid, text string, at time.Time) error {
	if err := r.db.Model(&model.Chat{}).Where("uuid = ?", chatUuid).
		Updates(map[string]any{
			"last_message":    text,
			"last_message_at": at,
		}).Error; err != nil {
		return wrapDBErrorf(err, "update last message chat=%s", chatUuid)
	}
	return nil
}

func (r *chatRepository) SoftDelete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Chat{}).Error; err != nil {
		return wrapDBErrorf(err, "delete chat uuid=%s", uuid)
	}
	return nil
}
