package repository

import (
	"time"

	"pigeon_chat_server/internal/model"

	"gorm.io/gorm"
)

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates the story repository.
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(story *model.Story) error {
	if err := r.db.Create(story).Error; err != nil {
		return wrapDBError(err, "create story")
	}
	return nil
}

func (r *storyRepository) FindActive(cutoff time.Time) ([]model.Story, error) {
	var stories []model.Story
	if err := r.db.Where("created_at >= ?", cutoff).
		Order("created_at DESC").Find(&stories).Error; err != nil {
		return nil, wrapDBError(err, "find active stories")
	}
	return stories, nil
}

func (r *storyRepository) FindByUuid(uuid string) (*model.Story, error) {
	var story model.Story
	if err := r.db.Where("uuid = ?", uuid).First(&story).Error; err != nil {
		return nil, wrapDBErrorf(err, "find story uuid=%s", uuid)
	}
	return &story, nil
}

func (r *storyRepository) DeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Story{}).Error; err != nil {
		return wrapDBErrorf(err, "delete story uuid=%s", uuid)
	}
	return nil
}

func (r *storyRepository) SweepExpired(cutoff time.Time) (int64, error) {
	// Unscoped: expired stories are removed for good, not soft-deleted,
	// so the media can be garbage collected later.
	res := r.db.Unscoped().Where("created_at < ?", cutoff).Delete(&model.Story{})
	if res.Error != nil {
		return 0, wrapDBError(res.Error, "sweep expired stories")
	}
	return res.RowsAffected, nil
}
