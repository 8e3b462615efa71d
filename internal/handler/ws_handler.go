package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service/realtime"
	"pigeon_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// WsLoginHandler upgrades the request to a WebSocket and registers the
// client with the broker. The JWT middleware ran before this point, so
// client_id must match the authenticated user.
// GET /ws/login?client_id=xxx
func WsLoginHandler(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	if authUuid, ok := c.Get("uuid"); ok && authUuid != clientId {
		HandleError(c, errorx.New(errorx.CodeForbidden, "client_id does not match token"))
		return
	}
	realtime.NewClientInit(c, clientId)
}

// WsLogoutHandler tears down the caller's realtime connection.
// POST /ws/logout
func WsLogoutHandler(c *gin.Context) {
	var req request.WsLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := realtime.ClientLogout(req.OwnerId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
