// Package chat implements conversation lifecycle: group creation,
// direct chat open-or-create, listing, and leaving.
package chat

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/errorx"
	"pigeon_chat_server/pkg/util/random"

	"go.uber.org/zap"
)

type chatService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewChatService builds the chat service.
func NewChatService(repos *repository.Repositories, cache myredis.AsyncCacheService) *chatService {
	return &chatService{repos: repos, cache: cache}
}

func chatListKey(ownerId string) string {
	return "chat_list_" + ownerId
}

// CreateChat creates a group chat and its member rows in one
// transaction. The owner is always a member.
func (s *chatService) CreateChat(req request.CreateChatRequest) (string, error) {
	memberSet := map[string]struct{}{req.OwnerId: {}}
	for _, id := range req.MemberIds {
		memberSet[id] = struct{}{}
	}
	if len(memberSet) < 2 {
		return "", errorx.New(errorx.CodeInvalidParam, "a group needs at least two members")
	}

	newChat := model.Chat{
		Uuid:    "C" + random.GetNowAndLenRandomString(13),
		Name:    req.Name,
		Avatar:  req.Avatar,
		IsGroup: true,
		OwnerId: req.OwnerId,
	}
	members := make([]model.ChatMember, 0, len(memberSet))
	for id := range memberSet {
		members = append(members, model.ChatMember{ChatUuid: newChat.Uuid, UserUuid: id})
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Chat.Create(&newChat); err != nil {
			return err
		}
		return tx.ChatMember.CreateBatch(members)
	})
	if err != nil {
		return "", err
	}

	s.invalidateChatLists(members)
	zap.L().Info("group chat created", zap.String("chat", newChat.Uuid), zap.Int("members", len(members)))
	return newChat.Uuid, nil
}

// OpenDirectChat returns the existing direct chat with the peer, or
// creates one.
func (s *chatService) OpenDirectChat(req request.OpenDirectChatRequest) (string, error) {
	if req.OwnerId == req.PeerId {
		return "", errorx.New(errorx.CodeInvalidParam, "cannot chat with yourself")
	}
	if _, err := s.repos.User.FindByUuid(req.PeerId); err != nil {
		if errorx.IsNotFound(err) {
			return "", errorx.New(errorx.CodeUserNotExist, "peer does not exist")
		}
		return "", err
	}

	existing, err := s.repos.Chat.FindDirectBetween(req.OwnerId, req.PeerId)
	if err == nil {
		return existing.Uuid, nil
	}
	if !errorx.IsNotFound(err) {
		return "", err
	}

	newChat := model.Chat{
		Uuid:    "C" + random.GetNowAndLenRandomString(13),
		IsGroup: false,
		OwnerId: req.OwnerId,
	}
	members := []model.ChatMember{
		{ChatUuid: newChat.Uuid, UserUuid: req.OwnerId},
		{ChatUuid: newChat.Uuid, UserUuid: req.PeerId},
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Chat.Create(&newChat); err != nil {
			return err
		}
		return tx.ChatMember.CreateBatch(members)
	})
	if err != nil {
		return "", err
	}
	s.invalidateChatLists(members)
	return newChat.Uuid, nil
}

// GetChatList lists the caller's chats ordered by latest activity,
// cache-aside with a short TTL.
func (s *chatService) GetChatList(ownerId string) ([]respond.ChatListRespond, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetOrError(context.Background(), chatListKey(ownerId)); err == nil {
			var list []respond.ChatListRespond
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
		}
	}

	chatUuids, err := s.repos.ChatMember.FindChatUuidsByUser(ownerId)
	if err != nil {
		return nil, err
	}
	if len(chatUuids) == 0 {
		return []respond.ChatListRespond{}, nil
	}
	chats, err := s.repos.Chat.FindByUuids(chatUuids)
	if err != nil {
		return nil, err
	}

	list := make([]respond.ChatListRespond, 0, len(chats))
	for _, c := range chats {
		members, err := s.repos.ChatMember.FindByChatUuid(c.Uuid)
		if err != nil {
			return nil, err
		}
		memberIds := make([]string, 0, len(members))
		for _, m := range members {
			memberIds = append(memberIds, m.UserUuid)
		}
		row := respond.ChatListRespond{
			ChatId:      c.Uuid,
			Name:        c.Name,
			Avatar:      c.Avatar,
			IsGroup:     c.IsGroup,
			LastMessage: c.LastMessage,
			MemberIds:   memberIds,
		}
		if c.LastMessageAt.Valid {
			row.LastMessageAt = c.LastMessageAt.Time.Format("2006-01-02 15:04:05")
		}
		list = append(list, row)
	}
	// Newest activity first; chats without messages sink to the bottom.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastMessageAt > list[j].LastMessageAt
	})

	if s.cache != nil {
		encoded, err := json.Marshal(list)
		if err == nil {
			s.cache.SubmitTask(func() {
				_ = s.cache.Set(context.Background(), chatListKey(ownerId), string(encoded), time.Minute*constants.REDIS_TIMEOUT)
			})
		}
	}
	return list, nil
}

// GetChatDetail returns one chat with its member profiles. Only
// members may look.
func (s *chatService) GetChatDetail(ownerId, chatUuid string) (*respond.ChatDetailRespond, error) {
	isMember, err := s.repos.ChatMember.IsMember(chatUuid, ownerId)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errorx.New(errorx.CodeForbidden, "not a member of this chat")
	}

	target, err := s.repos.Chat.FindByUuid(chatUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "chat does not exist")
		}
		return nil, err
	}
	members, err := s.repos.ChatMember.FindByChatUuid(chatUuid)
	if err != nil {
		return nil, err
	}
	memberIds := make([]string, 0, len(members))
	for _, m := range members {
		memberIds = append(memberIds, m.UserUuid)
	}
	profiles, err := s.repos.User.FindByUuids(memberIds)
	if err != nil {
		return nil, err
	}

	detail := respond.ChatDetailRespond{
		ChatId:      target.Uuid,
		Name:        target.Name,
		Avatar:      target.Avatar,
		IsGroup:     target.IsGroup,
		OwnerId:     target.OwnerId,
		LastMessage: target.LastMessage,
		Members:     make([]respond.ChatMemberRespond, 0, len(profiles)),
	}
	if target.LastMessageAt.Valid {
		detail.LastMessageAt = target.LastMessageAt.Time.Format("2006-01-02 15:04:05")
	}
	for _, profile := range profiles {
		detail.Members = append(detail.Members, respond.ChatMemberRespond{
			Uuid:     profile.Uuid,
			Username: profile.Username,
			Avatar:   profile.Avatar,
			Status:   s.overlayStatus(profile.Uuid, profile.Status),
		})
	}
	return &detail, nil
}

func (s *chatService) overlayStatus(uuid, fallback string) string {
	if s.cache == nil {
		return fallback
	}
	cached, err := s.cache.Get(context.Background(), "presence_"+uuid)
	if err != nil || cached == "" {
		return fallback
	}
	return cached
}

// LeaveChat removes the caller's membership. Direct chats cannot be
// left, only group chats.
func (s *chatService) LeaveChat(req request.LeaveChatRequest) error {
	target, err := s.repos.Chat.FindByUuid(req.ChatId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "chat does not exist")
		}
		return err
	}
	if !target.IsGroup {
		return errorx.New(errorx.CodeForbidden, "cannot leave a direct chat")
	}
	isMember, err := s.repos.ChatMember.IsMember(req.ChatId, req.OwnerId)
	if err != nil {
		return err
	}
	if !isMember {
		return errorx.New(errorx.CodeNotFound, "not a member of this chat")
	}
	if err := s.repos.ChatMember.Delete(req.ChatId, req.OwnerId); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.SubmitTask(func() {
			_ = s.cache.Delete(context.Background(), chatListKey(req.OwnerId))
		})
	}
	return nil
}

// invalidateChatLists drops every member's cached chat list.
func (s *chatService) invalidateChatLists(members []model.ChatMember) {
	if s.cache == nil {
		return
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserUuid)
	}
	s.cache.SubmitTask(func() {
		for _, id := range ids {
			_ = s.cache.Delete(context.Background(), chatListKey(id))
		}
	})
}
