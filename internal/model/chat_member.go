package model

import "gorm.io/gorm"

// ChatMember joins users to chats. Unordered, no roles.
type ChatMember struct {
	gorm.Model
	ChatUuid string `gorm:"column:chat_uuid;index;type:char(20);not null;comment:chat id"`
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:user id"`
}

func (ChatMember) TableName() string {
	return "chat_member"
}
