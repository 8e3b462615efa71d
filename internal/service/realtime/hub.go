package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/enum/message/message_status_enum"
	"pigeon_chat_server/pkg/enum/user/user_status_enum"
	"pigeon_chat_server/pkg/util/snowflake"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"
)

const onlineRosterKey = "online_users"

// hub holds the online roster and the event handling shared by both
// broker implementations. Brokers differ only in how frames travel from
// Publish to dispatch.
type hub struct {
	clients sync.Map // user uuid -> *UserConn

	repos *repository.Repositories
	cache myredis.AsyncCacheService

	parserPool fastjson.ParserPool
}

func (h *hub) addClient(client *UserConn) {
	h.clients.Store(client.Uuid, client)
	if h.cache != nil {
		h.cache.SubmitTask(func() {
			if err := h.cache.AddToSet(context.Background(), onlineRosterKey, client.Uuid); err != nil {
				zap.L().Error("add to online roster failed", zap.Error(err))
			}
		})
	}
	zap.L().Debug("client online", zap.String("uuid", client.Uuid))
}

func (h *hub) removeClient(client *UserConn) {
	h.clients.Delete(client.Uuid)
	if h.cache != nil {
		h.cache.SubmitTask(func() {
			if err := h.cache.RemoveFromSet(context.Background(), onlineRosterKey, client.Uuid); err != nil {
				zap.L().Error("remove from online roster failed", zap.Error(err))
			}
		})
	}
	zap.L().Info("client offline", zap.String("uuid", client.Uuid))
}

func (h *hub) getClient(userId string) *UserConn {
	value, ok := h.clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// dispatch routes one raw frame by its event field. The event name is
// peeked with fastjson before committing to a full decode.
func (h *hub) dispatch(data []byte) {
	parser := h.parserPool.Get()
	defer h.parserPool.Put(parser)

	parsed, err := parser.ParseBytes(data)
	if err != nil {
		zap.L().Error("malformed frame", zap.Error(err))
		return
	}
	event := string(parsed.GetStringBytes("event"))

	switch event {
	case EventSendMessage:
		var req request.ChatMessageRequest
		if err := json.Unmarshal(data, &req); err != nil {
			zap.L().Error("decode send-message failed", zap.Error(err))
			return
		}
		h.handleChatMessage(req)
	case EventTypingStart, EventTypingStop:
		var req request.TypingRequest
		if err := json.Unmarshal(data, &req); err != nil {
			zap.L().Error("decode typing event failed", zap.Error(err))
			return
		}
		h.handleTyping(req)
	case EventUpdateStatus:
		var req request.StatusUpdateRequest
		if err := json.Unmarshal(data, &req); err != nil {
			zap.L().Error("decode update-status failed", zap.Error(err))
			return
		}
		h.handleStatusUpdate(req)
	case EventReadReceipt:
		var req request.ReadReceiptRequest
		if err := json.Unmarshal(data, &req); err != nil {
			zap.L().Error("decode read-receipt failed", zap.Error(err))
			return
		}
		h.handleReadReceipt(req)
	default:
		zap.L().Warn("unknown event", zap.String("event", event))
	}
}

// handleChatMessage persists the message, updates the chat preview,
// fans out to participants, and echoes to the sender.
func (h *hub) handleChatMessage(req request.ChatMessageRequest) {
	message := model.Message{
		Uuid:        snowflake.GenerateID(),
		ChatUuid:    req.ChatId,
		Type:        req.Type,
		Content:     req.Content,
		Url:         req.Url,
		SendId:      req.SendId,
		SendName:    req.SendName,
		SendAvatar:  normalizePath(req.SendAvatar),
		FileType:    req.FileType,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ClientMsgId: req.ClientMsgId,
		AIGenerated: req.AIGenerated,
		Status:      message_status_enum.Unsent,
	}
	if message.FileSize == "" {
		message.FileSize = "0B"
	}

	if err := h.repos.Message.Create(&message); err != nil {
		zap.L().Error("persist message failed", zap.Error(err))
		return
	}

	preview := message.Content
	if message.Type != 0 && preview == "" {
		preview = message.FileName
	}
	if err := h.repos.Chat.UpdateLastMessage(message.ChatUuid, preview, message.CreatedAt); err != nil {
		zap.L().Error("update chat preview failed", zap.Error(err))
	}

	rsp := respond.GetMessageListRespond{
		Id:          snowflakeString(message.Uuid),
		ChatId:      message.ChatUuid,
		SendId:      message.SendId,
		SendName:    message.SendName,
		SendAvatar:  req.SendAvatar,
		Type:        message.Type,
		Content:     message.Content,
		Url:         message.Url,
		FileType:    message.FileType,
		FileName:    message.FileName,
		FileSize:    message.FileSize,
		ClientMsgId: message.ClientMsgId,
		AIGenerated: message.AIGenerated,
		Status:      message.Status,
		CreatedAt:   message.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	h.fanOutMessage(message, rsp)
	h.refreshMessageCache(message.ChatUuid, rsp)
}

// fanOutMessage pushes an envelope to every online chat member. The
// sender receives the same envelope as its echo; the client_msg_id
// inside lets it replace the optimistic copy.
func (h *hub) fanOutMessage(message model.Message, rsp respond.GetMessageListRespond) {
	envelope := struct {
		Event string `json:"event"`
		respond.GetMessageListRespond
	}{Event: EventMessage, GetMessageListRespond: rsp}

	jsonMessage, err := json.Marshal(envelope)
	if err != nil {
		zap.L().Error("marshal message envelope failed", zap.Error(err))
		return
	}
	messageBack := &MessageBack{Message: jsonMessage, Uuid: message.Uuid}

	members, err := h.repos.ChatMember.FindByChatUuid(message.ChatUuid)
	if err != nil {
		zap.L().Error("load chat members failed", zap.Error(err))
		return
	}
	for _, member := range members {
		if client := h.getClient(member.UserUuid); client != nil {
			client.SendBack <- messageBack
		}
	}
}

// handleTyping forwards typing indicators to the other online members.
// Nothing is persisted.
func (h *hub) handleTyping(req request.TypingRequest) {
	payload, err := json.Marshal(req)
	if err != nil {
		zap.L().Error("marshal typing event failed", zap.Error(err))
		return
	}
	members, err := h.repos.ChatMember.FindByChatUuid(req.ChatId)
	if err != nil {
		zap.L().Error("load chat members failed", zap.Error(err))
		return
	}
	for _, member := range members {
		if member.UserUuid == req.SendId {
			continue
		}
		if client := h.getClient(member.UserUuid); client != nil {
			client.SendBack <- &MessageBack{Message: payload}
		}
	}
}

// handleStatusUpdate stores the presence value (cache with TTL, column
// as fallback) and notifies the user's online friends.
func (h *hub) handleStatusUpdate(req request.StatusUpdateRequest) {
	if !user_status_enum.Valid(req.Status) {
		zap.L().Warn("invalid status value", zap.String("status", req.Status))
		return
	}
	if err := h.repos.User.UpdateStatus(req.SendId, req.Status); err != nil {
		zap.L().Error("persist status failed", zap.Error(err))
	}
	if h.cache != nil {
		h.cache.SubmitTask(func() {
			if err := h.cache.Set(context.Background(), "presence_"+req.SendId, req.Status, constants.PRESENCE_TTL); err != nil {
				zap.L().Error("cache presence failed", zap.Error(err))
			}
		})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		zap.L().Error("marshal status event failed", zap.Error(err))
		return
	}
	friends, err := h.repos.Friend.FindByOwner(req.SendId)
	if err != nil {
		zap.L().Error("load friends failed", zap.Error(err))
		return
	}
	for _, friend := range friends {
		if client := h.getClient(friend.FriendId); client != nil {
			client.SendBack <- &MessageBack{Message: payload}
		}
	}
}

// handleReadReceipt advances stored statuses and forwards the receipt
// to the chat's other online members.
func (h *hub) handleReadReceipt(req request.ReadReceiptRequest) {
	if err := h.repos.Message.AdvanceChatStatus(req.ChatId, req.ReaderId, message_status_enum.Read); err != nil {
		zap.L().Error("advance read status failed", zap.Error(err))
	}
	if h.cache != nil {
		h.cache.SubmitTask(func() {
			if err := h.cache.Delete(context.Background(), "message_list_"+req.ChatId); err != nil {
				zap.L().Error("invalidate message cache failed", zap.Error(err))
			}
		})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		zap.L().Error("marshal read receipt failed", zap.Error(err))
		return
	}
	members, err := h.repos.ChatMember.FindByChatUuid(req.ChatId)
	if err != nil {
		zap.L().Error("load chat members failed", zap.Error(err))
		return
	}
	for _, member := range members {
		if member.UserUuid == req.ReaderId {
			continue
		}
		if client := h.getClient(member.UserUuid); client != nil {
			client.SendBack <- &MessageBack{Message: payload}
		}
	}
}

// refreshMessageCache appends to the cached history list if one exists.
func (h *hub) refreshMessageCache(chatUuid string, rsp respond.GetMessageListRespond) {
	if h.cache == nil {
		return
	}
	h.cache.SubmitTask(func() {
		key := "message_list_" + chatUuid
		cached, err := h.cache.GetOrError(context.Background(), key)
		if err != nil {
			return // no cached list to maintain
		}
		var list []respond.GetMessageListRespond
		if err := json.Unmarshal([]byte(cached), &list); err != nil {
			return
		}
		list = append(list, rsp)
		if encoded, err := json.Marshal(list); err == nil {
			_ = h.cache.Set(context.Background(), key, string(encoded), time.Minute*constants.REDIS_TIMEOUT)
		}
	})
}
