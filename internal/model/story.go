package model

import "gorm.io/gorm"

// Story is an ephemeral media post, swept once older than the TTL.
type Story struct {
	gorm.Model

	// Uuid is the story id, "T" + date + random suffix.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:story id"`

	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:author id"`

	MediaUrl string `gorm:"column:media_url;type:varchar(255);not null;comment:media url"`

	Caption string `gorm:"column:caption;type:varchar(200);comment:caption"`
}

func (Story) TableName() string {
	return "story"
}
