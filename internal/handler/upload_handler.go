package handler

import (
	"pigeon_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadAvatarHandler stores an avatar image.
// POST /upload/avatar
func UploadAvatarHandler(c *gin.Context) {
	path, err := service.Svc.Message.UploadAvatar(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, path)
}

// UploadFileHandler stores message attachments.
// POST /upload/file
func UploadFileHandler(c *gin.Context) {
	paths, err := service.Svc.Message.UploadFile(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, paths)
}

// UploadStoryMediaHandler stores a story image.
// POST /upload/story
func UploadStoryMediaHandler(c *gin.Context) {
	path, err := service.Svc.Message.UploadStoryMedia(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, path)
}
