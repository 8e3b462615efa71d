package repository

import (
	"pigeon_chat_server/internal/model"

	"gorm.io/gorm"
)

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates the friend repository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(friend *model.Friend) error {
	if err := r.db.Create(friend).Error; err != nil {
		return wrapDBError(err, "create friend")
	}
	return nil
}

func (r *friendRepository) Delete(ownerId, friendId string) error {
	if err := r.db.Where("owner_id = ? AND friend_id = ?", ownerId, friendId).
		Delete(&model.Friend{}).Error; err != nil {
		return wrapDBErrorf(err, "delete friend owner=%s friend=%s", ownerId, friendId)
	}
	return nil
}

func (r *friendRepository) FindByOwner(ownerId string) ([]model.Friend, error) {
	var friends []model.Friend
	if err := r.db.Where("owner_id = ?", ownerId).Find(&friends).Error; err != nil {
		return nil, wrapDBErrorf(err, "find friends owner=%s", ownerId)
	}
	return friends, nil
}

func (r *friendRepository) Exists(ownerId, friendId string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Friend{}).
		Where("owner_id = ? AND friend_id = ?", ownerId, friendId).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "check friend owner=%s friend=%s", ownerId, friendId)
	}
	return count > 0, nil
}
