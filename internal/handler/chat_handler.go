package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateChatHandler creates a group chat.
// POST /chat/create
func CreateChatHandler(c *gin.Context) {
	var req request.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	chatId, err := service.Svc.Chat.CreateChat(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"chat_id": chatId})
}

// OpenDirectChatHandler finds or creates the direct chat with a peer.
// POST /chat/open
func OpenDirectChatHandler(c *gin.Context) {
	var req request.OpenDirectChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	chatId, err := service.Svc.Chat.OpenDirectChat(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"chat_id": chatId})
}

// GetChatListHandler lists the caller's chats, newest activity first.
// GET /chat/list?owner_id=xxx
func GetChatListHandler(c *gin.Context) {
	var req request.GetChatListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := service.Svc.Chat.GetChatList(req.OwnerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetChatDetailHandler returns one chat with its member profiles.
// GET /chat/:uuid
func GetChatDetailHandler(c *gin.Context) {
	rsp, err := service.Svc.Chat.GetChatDetail(c.GetString("uuid"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// LeaveChatHandler removes the caller from a group chat.
// POST /chat/leave
func LeaveChatHandler(c *gin.Context) {
	var req request.LeaveChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Chat.LeaveChat(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
