package handler

import (
	"ta-chat-go/internal/middleware"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler 负责处理回答评价请求。
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler 创建一个新的 FeedbackHandler 实例。
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// RateRequest 定义了评价请求体，positive 必填。
type RateRequest struct {
	Positive *bool `json:"positive" binding:"required"`
}

// Rate 对一条回答做出赞/踩评价。
func (h *FeedbackHandler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Rate: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：positive 不能为空")
		return
	}

	// 已评价或评价在途时返回 409，不会再次请求后端
	turn, err := h.feedbackService.Rate(c.Request.Context(), c.Param("id"), c.Param("qid"), *req.Positive, middleware.IdentityFrom(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, turn)
}
