package repository

import (
	"pigeon_chat_server/internal/model"

	"gorm.io/gorm"
)

type chatMemberRepository struct {
	db *gorm.DB
}

// NewChatMemberRepository creates the chat member repository.
func NewChatMemberRepository(db *gorm.DB) ChatMemberRepository {
	return &chatMemberRepository{db: db}
}

func (r *chatMemberRepository) Create(member *model.ChatMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "create chat member")
	}
	return nil
}

func (r *chatMemberRepository) CreateBatch(members []model.ChatMember) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.Create(&members).Error; err != nil {
		return wrapDBError(err, "create chat members")
	}
	return nil
}

func (r *chatMemberRepository) FindByChatUuid(chatUuid string) ([]model.ChatMember, error) {
	var members []model.ChatMember
	if err := r.db.Where("chat_uuid = ?", chatUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find members chat=%s", chatUuid)
	}
	return members, nil
}

func (r *chatMemberRepository) FindChatUuidsByUser(userUuid string) ([]string, error) {
	var uuids []string
	if err := r.db.Model(&model.ChatMember{}).Where("user_uuid = ?", userUuid).
		Pluck("chat_uuid", &uuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "find chats user=%s", userUuid)
	}
	return uuids, nil
}

func (r *chatMemberRepository) Delete(chatUuid, userUuid string) error {
	if err := r.db.Where("chat_uuid = ? AND user_uuid = ?", chatUuid, userUuid).
		Delete(&model.ChatMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete member chat=%s user=%s", chatUuid, userUuid)
	}
	return nil
}

func (r *chatMemberRepository) IsMember(chatUuid, userUuid string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.ChatMember{}).
		Where("chat_uuid = ? AND user_uuid = ?", chatUuid, userUuid).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "check member chat=%s user=%s", chatUuid, userUuid)
	}
	return count > 0, nil
}
