package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Message is one chat message. Sender name/avatar are denormalized so
// history reads avoid a join against user_info.
type Message struct {
	gorm.Model

	// Uuid is a snowflake id; bigint keeps it sortable by creation order.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:snowflake id"`

	ChatUuid string `gorm:"column:chat_uuid;index;type:char(20);not null;comment:chat id"`

	// Type: 0 text, 1 file.
	Type int8 `gorm:"column:type;not null;comment:payload kind"`

	Content string `gorm:"column:content;type:TEXT;comment:message text"`

	// Url points at uploaded media for file messages.
	Url string `gorm:"column:url;type:varchar(255);comment:media url"`

	SendId     string `gorm:"column:send_id;index;type:char(20);not null;comment:sender id"`
	SendName   string `gorm:"column:send_name;type:varchar(30);not null;comment:sender name"`
	SendAvatar string `gorm:"column:send_avatar;type:varchar(255);comment:sender avatar"`

	FileType string `gorm:"column:file_type;type:varchar(50);comment:mime type"`
	FileName string `gorm:"column:file_name;type:varchar(50);comment:file name"`
	FileSize string `gorm:"column:file_size;type:varchar(20);comment:display size"`

	// ClientMsgId is the sender-chosen id of the optimistic local copy;
	// echoed back so the client can replace instead of append.
	ClientMsgId string `gorm:"column:client_msg_id;type:char(36);comment:optimistic echo key"`

	// AIGenerated marks content produced by the completion API.
	AIGenerated bool `gorm:"column:ai_generated;not null;default:false;comment:ai flag"`

	// Status: 0 unsent, 1 sent, 2 delivered, 3 read. Recorded, not
	// enforced as a state machine.
	Status int8 `gorm:"column:status;not null;comment:delivery state"`

	SendAt sql.NullTime `gorm:"column:send_at;comment:socket delivery time"`
}

func (Message) TableName() string {
	return "message"
}
