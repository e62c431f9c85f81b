package handler

import (
	"ta-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler 负责会话的建立、查看与结束。
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler 创建一个新的 SessionHandler 实例。
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start 向后端申请聊天室 ID 并返回新会话。
func (h *SessionHandler) Start(c *gin.Context) {
	// 申请失败时不会创建会话
	id, _, err := h.sessionService.Start(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	view, err := h.sessionService.View(id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, view)
}

// Get 返回会话快照。
func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.sessionService.View(c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, view)
}

// End 结束会话。
func (h *SessionHandler) End(c *gin.Context) {
	h.sessionService.End(c.Param("id"))
	ok(c, nil)
}
