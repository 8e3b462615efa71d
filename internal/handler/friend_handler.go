package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service"
	"pigeon_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AddFriendHandler creates a symmetric friendship.
// POST /friend/add
func AddFriendHandler(c *gin.Context) {
	var req request.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Friend.AddFriend(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteFriendHandler removes both directions of a friendship.
// POST /friend/delete
func DeleteFriendHandler(c *gin.Context) {
	var req request.DeleteFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Friend.DeleteFriend(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetFriendListHandler lists the caller's friends.
// GET /friend/list?owner_id=xxx
func GetFriendListHandler(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	rsp, err := service.Svc.Friend.GetFriendList(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
