package model

import "gorm.io/gorm"

// Friend is one direction of a friendship. Pairs are symmetric: adding
// a friend inserts (A,B) and (B,A) in one transaction.
type Friend struct {
	gorm.Model
	OwnerId  string `gorm:"column:owner_id;index:idx_owner_friend,unique;type:char(20);not null;comment:owning user"`
	FriendId string `gorm:"column:friend_id;index:idx_owner_friend,unique;type:char(20);not null;comment:befriended user"`
}

func (Friend) TableName() string {
	return "friend"
}
