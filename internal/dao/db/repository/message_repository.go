package repository

import (
	"pigeon_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

func (r *messageRepository) FindByChatUuid(chatUuid string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("chat_uuid = ?", chatUuid).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find messages chat=%s", chatUuid)
	}
	return messages, nil
}

func (r *messageRepository) UpdateStatus(uuid int64, status int8) error {
	if err := r.db.Model(&model.Message{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "update message status uuid=%d", uuid)
	}
	return nil
}

func (r *messageRepository) AdvanceChatStatus(chatUuid, reader string, status int8) error {
	if err := r.db.Model(&model.Message{}).
		Where("chat_uuid = ? AND send_id <> ? AND status < ?", chatUuid, reader, status).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "advance message status chat=%s", chatUuid)
	}
	return nil
}
