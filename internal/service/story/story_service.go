// Package story implements ephemeral posts with a TTL sweep: stories
// older than the configured lifetime are hard-deleted before reads and
// on a background interval.
package story

import (
	"context"
	"time"

	"pigeon_chat_server/internal/dao/db/repository"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/errorx"
	"pigeon_chat_server/pkg/util/random"

	"go.uber.org/zap"
)

type storyService struct {
	repos         *repository.Repositories
	ttl           time.Duration
	sweepInterval time.Duration
}

// NewStoryService builds the story service.
func NewStoryService(repos *repository.Repositories, ttl, sweepInterval time.Duration) *storyService {
	return &storyService{repos: repos, ttl: ttl, sweepInterval: sweepInterval}
}

// CreateStory posts a story for the owner.
func (s *storyService) CreateStory(req request.CreateStoryRequest) (string, error) {
	if _, err := s.repos.User.FindByUuid(req.OwnerId); err != nil {
		if errorx.IsNotFound(err) {
			return "", errorx.New(errorx.CodeUserNotExist, "user does not exist")
		}
		return "", err
	}
	newStory := model.Story{
		Uuid:     "T" + random.GetNowAndLenRandomString(13),
		UserUuid: req.OwnerId,
		MediaUrl: req.MediaUrl,
		Caption:  req.Caption,
	}
	if err := s.repos.Story.Create(&newStory); err != nil {
		return "", err
	}
	return newStory.Uuid, nil
}

// GetActiveStories sweeps expired rows first, then lists the survivors
// with their author overlays, newest first.
func (s *storyService) GetActiveStories() ([]respond.StoryListRespond, error) {
	if _, err := s.SweepExpired(); err != nil {
		zap.L().Error("pre-read story sweep failed", zap.Error(err))
	}

	cutoff := time.Now().Add(-s.ttl)
	rows, err := s.repos.Story.FindActive(cutoff)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []respond.StoryListRespond{}, nil
	}

	authorIds := make([]string, 0, len(rows))
	for _, row := range rows {
		authorIds = append(authorIds, row.UserUuid)
	}
	authors, err := s.repos.User.FindByUuids(authorIds)
	if err != nil {
		return nil, err
	}
	authorByUuid := make(map[string]model.UserInfo, len(authors))
	for _, author := range authors {
		authorByUuid[author.Uuid] = author
	}

	list := make([]respond.StoryListRespond, 0, len(rows))
	for _, row := range rows {
		item := respond.StoryListRespond{
			StoryId:   row.Uuid,
			UserId:    row.UserUuid,
			MediaUrl:  row.MediaUrl,
			Caption:   row.Caption,
			CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if author, ok := authorByUuid[row.UserUuid]; ok {
			item.Username = author.Username
			item.Avatar = author.Avatar
		}
		list = append(list, item)
	}
	return list, nil
}

// DeleteStory removes a story; only its author may delete it.
func (s *storyService) DeleteStory(req request.DeleteStoryRequest) error {
	target, err := s.repos.Story.FindByUuid(req.StoryId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "story does not exist")
		}
		return err
	}
	if target.UserUuid != req.OwnerId {
		return errorx.New(errorx.CodeForbidden, "not your story")
	}
	return s.repos.Story.DeleteByUuid(req.StoryId)
}

// SweepExpired deletes exactly the stories created before now-ttl.
func (s *storyService) SweepExpired() (int64, error) {
	cutoff := time.Now().Add(-s.ttl)
	removed, err := s.repos.Story.SweepExpired(cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		zap.L().Info("stories swept", zap.Int64("removed", removed))
	}
	return removed, nil
}

// StartSweeper runs the sweep on the configured interval until ctx is
// cancelled. Call in its own goroutine.
func (s *storyService) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(); err != nil {
				zap.L().Error("story sweep failed", zap.Error(err))
			}
		}
	}
}
