package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Chat is a conversation, direct or group. Membership is the flat
// ChatMember rows; there is no role hierarchy.
type Chat struct {
	gorm.Model

	// Uuid is the chat id, "C" + date + random suffix.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:chat id"`

	// Name is empty for direct chats; the UI derives it from the peer.
	Name string `gorm:"column:name;type:varchar(30);comment:chat name"`

	Avatar string `gorm:"column:avatar;type:varchar(255);comment:chat avatar"`

	IsGroup bool `gorm:"column:is_group;not null;default:false;comment:group flag"`

	// OwnerId is the creator. Groups keep it for deletion rights only.
	OwnerId string `gorm:"column:owner_id;index;type:char(20);not null;comment:creator id"`

	// LastMessage and LastMessageAt are denormalized for the chat list.
	LastMessage   string       `gorm:"column:last_message;type:TEXT;comment:latest message text"`
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;comment:latest message time"`
}

func (Chat) TableName() string {
	return "chat"
}
