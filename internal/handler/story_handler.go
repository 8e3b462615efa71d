package handler

import (
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStoryHandler posts a story.
// POST /story/create
func CreateStoryHandler(c *gin.Context) {
	var req request.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	storyId, err := service.Svc.Story.CreateStory(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"story_id": storyId})
}

// GetActiveStoriesHandler lists the stories younger than the TTL.
// GET /story/list
func GetActiveStoriesHandler(c *gin.Context) {
	rsp, err := service.Svc.Story.GetActiveStories()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// DeleteStoryHandler removes the caller's own story.
// POST /story/delete
func DeleteStoryHandler(c *gin.Context) {
	var req request.DeleteStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Story.DeleteStory(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
