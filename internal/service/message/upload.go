package message

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"pigeon_chat_server/internal/config"
	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/errorx"
	"pigeon_chat_server/pkg/util/random"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var imageMimes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// UploadAvatar stores the first uploaded image under the avatar dir and
// returns its filename.
func (s *messageService) UploadAvatar(c *gin.Context) (string, error) {
	return s.uploadSingleImage(c, config.GetConfig().StaticAvatarPath)
}

// UploadStoryMedia stores the first uploaded image under the story dir.
func (s *messageService) UploadStoryMedia(c *gin.Context) (string, error) {
	return s.uploadSingleImage(c, config.GetConfig().StaticStoryPath)
}

func (s *messageService) uploadSingleImage(c *gin.Context, dstDir string) (string, error) {
	if err := c.Request.ParseMultipartForm(constants.FILE_MAX_SIZE); err != nil {
		zap.L().Error("parse multipart form failed", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	mForm := c.Request.MultipartForm
	if mForm == nil || len(mForm.File) == 0 {
		return "", errorx.New(errorx.CodeInvalidParam, "no file uploaded")
	}

	for _, headers := range mForm.File {
		for _, fileHeader := range headers {
			filename, err := saveFile(fileHeader, dstDir, imageMimes...)
			if err != nil {
				if errorx.GetCode(err) == errorx.CodeInvalidParam {
					continue
				}
				zap.L().Error("save image failed", zap.Error(err))
				return "", errorx.ErrServerBusy
			}
			return filename, nil
		}
	}
	return "", errorx.New(errorx.CodeInvalidParam, "no acceptable image found")
}

// UploadFile stores every uploaded attachment; a failure removes the
// already-written files so the batch lands atomically.
func (s *messageService) UploadFile(c *gin.Context) ([]string, error) {
	if err := c.Request.ParseMultipartForm(constants.FILE_MAX_SIZE); err != nil {
		zap.L().Error("parse multipart form failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	mForm := c.Request.MultipartForm
	if mForm == nil || len(mForm.File) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "no file uploaded")
	}

	dstDir := config.GetConfig().StaticFilePath
	var uploaded []string
	for _, headers := range mForm.File {
		for _, fileHeader := range headers {
			filename, err := saveFile(fileHeader, dstDir)
			if err != nil {
				zap.L().Error("save file failed", zap.Error(err))
				for _, f := range uploaded {
					_ = os.Remove(filepath.Join(dstDir, f))
				}
				return nil, errorx.ErrServerBusy
			}
			uploaded = append(uploaded, filename)
		}
	}
	return uploaded, nil
}

// saveFile writes one part to dstDir under a random name, sniffing the
// content type from the leading bytes when a MIME allow-list is given.
func saveFile(fileHeader *multipart.FileHeader, dstDir string, allowedMimes ...string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer)
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	if len(allowedMimes) > 0 {
		allowed := false
		for _, mime := range allowedMimes {
			if contentType == mime {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", errorx.Newf(errorx.CodeInvalidParam, "unsupported content type %s", contentType)
		}
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", err
	}
	filename := random.GetNowAndLenRandomString(10) + filepath.Ext(fileHeader.Filename)
	dst, err := os.Create(filepath.Join(dstDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(dstDir, filename))
		return "", err
	}
	return filename, nil
}
