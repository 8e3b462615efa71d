package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMessageListHandler returns a chat's history.
// GET /message/list?owner_id=xxx&chat_id=xxx
func GetMessageListHandler(c *gin.Context) {
	var req request.GetMessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := service.Svc.Message.GetMessageList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// MarkDeliveredHandler advances statuses to delivered for the caller.
// POST /message/delivered
func MarkDeliveredHandler(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Message.MarkDelivered(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MarkReadHandler advances statuses to read for the caller.
// POST /message/read
func MarkReadHandler(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Message.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
