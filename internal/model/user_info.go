package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo is the account record.
type UserInfo struct {
	gorm.Model

	// Uuid is the user id, "U" + date + random suffix.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:user id"`

	Username string `gorm:"column:username;uniqueIndex;type:varchar(30);not null;comment:login name"`

	Avatar string `gorm:"column:avatar;type:varchar(255);default:/static/avatars/default.png;not null;comment:avatar url"`

	// Status is the client-settable presence value. The authoritative
	// short-lived copy lives in the cache; this column is the fallback.
	Status string `gorm:"column:status;type:varchar(10);default:offline;comment:presence"`

	JobTitle string `gorm:"column:job_title;type:varchar(50);comment:job title"`

	Signature string `gorm:"column:signature;type:varchar(100);comment:profile signature"`

	Password string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt hash"`

	LastOnlineAt  sql.NullTime `gorm:"column:last_online_at;comment:last login"`
	LastOfflineAt sql.NullTime `gorm:"column:last_offline_at;comment:last logout"`

	// RawPassword receives the plaintext from the API layer and is
	// hashed into Password by BeforeSave. Never persisted.
	RawPassword string `gorm:"-" json:"-"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave hashes RawPassword into Password when present.
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *UserInfo) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}
