// Package message serves chat history and delivery-status transitions.
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/enum/message/message_status_enum"
	"pigeon_chat_server/pkg/errorx"
)

type messageService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewMessageService builds the message service.
func NewMessageService(repos *repository.Repositories, cache myredis.AsyncCacheService) *messageService {
	return &messageService{repos: repos, cache: cache}
}

func messageListKey(chatUuid string) string {
	return "message_list_" + chatUuid
}

// GetMessageList returns a chat's history cache-aside: cache hit first,
// otherwise read the rows and populate the cache off the request path.
func (s *messageService) GetMessageList(req request.GetMessageListRequest) ([]respond.GetMessageListRespond, error) {
	isMember, err := s.repos.ChatMember.IsMember(req.ChatId, req.OwnerId)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errorx.New(errorx.CodeForbidden, "not a member of this chat")
	}

	if s.cache != nil {
		if cached, err := s.cache.GetOrError(context.Background(), messageListKey(req.ChatId)); err == nil {
			var list []respond.GetMessageListRespond
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
		}
	}

	rows, err := s.repos.Message.FindByChatUuid(req.ChatId)
	if err != nil {
		return nil, err
	}
	list := make([]respond.GetMessageListRespond, 0, len(rows))
	for _, row := range rows {
		list = append(list, respond.GetMessageListRespond{
			Id:          strconv.FormatInt(row.Uuid, 10),
			ChatId:      row.ChatUuid,
			SendId:      row.SendId,
			SendName:    row.SendName,
			SendAvatar:  row.SendAvatar,
			Type:        row.Type,
			Content:     row.Content,
			Url:         row.Url,
			FileType:    row.FileType,
			FileName:    row.FileName,
			FileSize:    row.FileSize,
			ClientMsgId: row.ClientMsgId,
			AIGenerated: row.AIGenerated,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(list); err == nil {
			key := messageListKey(req.ChatId)
			s.cache.SubmitTask(func() {
				_ = s.cache.Set(context.Background(), key, string(encoded), time.Minute*constants.REDIS_TIMEOUT)
			})
		}
	}
	return list, nil
}

// MarkDelivered raises statuses below delivered for messages the
// reader did not send.
func (s *messageService) MarkDelivered(req request.MarkReadRequest) error {
	return s.advance(req, message_status_enum.Delivered)
}

// MarkRead raises statuses below read for messages the reader did not
// send.
func (s *messageService) MarkRead(req request.MarkReadRequest) error {
	return s.advance(req, message_status_enum.Read)
}

func (s *messageService) advance(req request.MarkReadRequest, status int8) error {
	isMember, err := s.repos.ChatMember.IsMember(req.ChatId, req.OwnerId)
	if err != nil {
		return err
	}
	if !isMember {
		return errorx.New(errorx.CodeForbidden, "not a member of this chat")
	}
	if err := s.repos.Message.AdvanceChatStatus(req.ChatId, req.OwnerId, status); err != nil {
		return err
	}
	if s.cache != nil {
		key := messageListKey(req.ChatId)
		s.cache.SubmitTask(func() {
			_ = s.cache.Delete(context.Background(), key)
		})
	}
	return nil
}
