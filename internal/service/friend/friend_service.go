// Package friend maintains symmetric friendships: every friendship is
// two rows, (A,B) and (B,A), inserted and removed together.
package friend

import (
	"context"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/errorx"
)

type friendService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewFriendService builds the friend service.
func NewFriendService(repos *repository.Repositories, cache myredis.AsyncCacheService) *friendService {
	return &friendService{repos: repos, cache: cache}
}

// AddFriend inserts both direction rows in one transaction.
func (s *friendService) AddFriend(req request.AddFriendRequest) error {
	if req.OwnerId == req.FriendId {
		return errorx.New(errorx.CodeInvalidParam, "cannot befriend yourself")
	}
	if _, err := s.repos.User.FindByUuid(req.FriendId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "user does not exist")
		}
		return err
	}
	exists, err := s.repos.Friend.Exists(req.OwnerId, req.FriendId)
	if err != nil {
		return err
	}
	if exists {
		return errorx.New(errorx.CodeAlreadyFriends, "already friends")
	}

	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Friend.Create(&model.Friend{OwnerId: req.OwnerId, FriendId: req.FriendId}); err != nil {
			return err
		}
		return tx.Friend.Create(&model.Friend{OwnerId: req.FriendId, FriendId: req.OwnerId})
	})
}

// DeleteFriend removes both direction rows in one transaction.
func (s *friendService) DeleteFriend(req request.DeleteFriendRequest) error {
	exists, err := s.repos.Friend.Exists(req.OwnerId, req.FriendId)
	if err != nil {
		return err
	}
	if !exists {
		return errorx.New(errorx.CodeNotFound, "not friends")
	}

	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Friend.Delete(req.OwnerId, req.FriendId); err != nil {
			return err
		}
		return tx.Friend.Delete(req.FriendId, req.OwnerId)
	})
}

// GetFriendList lists the caller's friends with presence overlays.
func (s *friendService) GetFriendList(ownerId string) ([]respond.FriendListRespond, error) {
	rows, err := s.repos.Friend.FindByOwner(ownerId)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []respond.FriendListRespond{}, nil
	}

	friendIds := make([]string, 0, len(rows))
	for _, row := range rows {
		friendIds = append(friendIds, row.FriendId)
	}
	profiles, err := s.repos.User.FindByUuids(friendIds)
	if err != nil {
		return nil, err
	}

	results := make([]respond.FriendListRespond, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, respond.FriendListRespond{
			Uuid:     profile.Uuid,
			Username: profile.Username,
			Avatar:   profile.Avatar,
			Status:   s.overlayStatus(profile.Uuid, profile.Status),
			JobTitle: profile.JobTitle,
		})
	}
	return results, nil
}

func (s *friendService) overlayStatus(uuid, fallback string) string {
	if s.cache == nil {
		return fallback
	}
	cached, err := s.cache.Get(context.Background(), "presence_"+uuid)
	if err != nil || cached == "" {
		return fallback
	}
	return cached
}
