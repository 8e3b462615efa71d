package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// SuggestRepliesHandler proposes replies to a chat's recent history.
// POST /ai/suggest-replies
func SuggestRepliesHandler(c *gin.Context) {
	var req request.SuggestRepliesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := service.Svc.AI.SuggestReplies(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// TranslateHandler translates a message text.
// POST /ai/translate
func TranslateHandler(c *gin.Context) {
	var req request.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := service.Svc.AI.Translate(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// SummarizeHandler condenses a chat's recent history.
// POST /ai/summarize
func SummarizeHandler(c *gin.Context) {
	var req request.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := service.Svc.AI.Summarize(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
