package handler

import (
	"ta-chat-go/internal/i18n"
	"ta-chat-go/internal/model"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler 负责语言/模式设置以及界面文案。
type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

// NewPreferenceHandler 创建一个新的 PreferenceHandler 实例。
func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// Get 返回会话当前的语言与模式。
func (h *PreferenceHandler) Get(c *gin.Context) {
	snapshot, err := h.preferenceService.Current(c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, snapshot)
}

// Update 修改语言和/或模式，未给出的字段保持不变。
func (h *PreferenceHandler) Update(c *gin.Context) {
	var req service.PreferenceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdatePreferences: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载")
		return
	}
	snapshot, err := h.preferenceService.Update(c.Param("id"), req)
	if err != nil {
		fail(c, err, snapshot)
		return
	}
	ok(c, snapshot)
}

// Labels 返回指定语言的界面文案，未指定或无法识别时使用中文。
// keys 为排序后的键列表，前端按它稳定地渲染。
func (h *PreferenceHandler) Labels(c *gin.Context) {
	locale, _ := model.ParseLocale(c.Query("locale"))
	if !locale.Valid() {
		locale = model.DefaultLocale
	}
	ok(c, gin.H{"locale": locale, "keys": i18n.Keys(), "labels": i18n.Labels(locale)})
}
