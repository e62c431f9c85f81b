// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/backend"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": message, "data": nil})
}

// fail 将业务错误映射为 HTTP 状态码，data 可携带失败时的最新状态（例如上传任务）。
func fail(c *gin.Context, err error, data interface{}) {
	status := statusOf(err)
	c.JSON(status, gin.H{"code": status, "message": err.Error(), "data": data})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTurnNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyQuestion),
		errors.Is(err, service.ErrInvalidPreference),
		errors.Is(err, service.ErrUnknownDepartment),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, errUnknownMessage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrDispatchInFlight),
		errors.Is(err, service.ErrRatingInFlight),
		errors.Is(err, service.ErrAlreadyRated),
		errors.Is(err, service.ErrNoFileSelected),
		errors.Is(err, service.ErrUploadNotIdle),
		errors.Is(err, service.ErrStaleUploadJob):
		return http.StatusConflict
	case errors.Is(err, service.ErrSessionUnresolved),
		errors.Is(err, service.ErrDispatchFailed),
		errors.Is(err, service.ErrRatingRejected),
		errors.Is(err, service.ErrUploadFailed),
		errors.Is(err, backend.ErrUnexpectedStatus),
		errors.Is(err, backend.ErrUploadRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
