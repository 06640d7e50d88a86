package controllers

import (
	"rentalsite/errors"
	"rentalsite/response"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

// respondError ghi log lỗi hệ thống (lỗi nghiệp vụ thì không) rồi trả response
func respondError(c *gin.Context, log logger.Logger, err error) {
	if isSystemError(err) {
		log.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	response.FromError(c, err)
}

func isSystemError(err error) bool {
	if errors.Is(err, errors.ErrRoomNotFound) || errors.Is(err, errors.ErrHostNotFound) ||
		errors.Is(err, errors.ErrSettingNotFound) || errors.Is(err, errors.ErrUnauthorized) {
		return false
	}
	appErr := errors.GetAppError(err)
	return appErr == nil || appErr.Code == errors.ErrCodeDBError || appErr.Code == errors.ErrCodeIOError
}
