package service

import (
	"fmt"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/log"
)

// PreferenceUpdate 是一次偏好修改，nil 字段保持不变。
type PreferenceUpdate struct {
	Locale *string `json:"locale"`
	Mode   *string `json:"mode"`
}

// PreferenceService 负责读取与修改会话的语言/模式。
type PreferenceService interface {
	Current(sessionID string) (model.PreferenceSnapshot, error)
	Update(sessionID string, update PreferenceUpdate) (model.PreferenceSnapshot, error)
}

type preferenceService struct {
	sessions SessionService
}

// NewPreferenceService 创建一个新的 PreferenceService 实例。
func NewPreferenceService(sessions SessionService) PreferenceService {
	return &preferenceService{sessions: sessions}
}

// Current 返回会话当前的语言与模式。
func (s *preferenceService) Current(sessionID string) (model.PreferenceSnapshot, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.PreferenceSnapshot{}, err
	}
	return session.Preferences.Current(), nil
}

// Update 先校验模式再写入，模式非法时不做任何修改。
// 无法识别的语言照常保存，派发时回退为 CHINESE。
func (s *preferenceService) Update(sessionID string, update PreferenceUpdate) (model.PreferenceSnapshot, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.PreferenceSnapshot{}, err
	}

	var mode model.QuestionMode
	if update.Mode != nil {
		mode, err = model.ParseQuestionMode(*update.Mode)
		if err != nil {
			return session.Preferences.Current(), fmt.Errorf("%w: %v", ErrInvalidPreference, err)
		}
	}
	if update.Locale != nil {
		locale, ok := model.ParseLocale(*update.Locale)
		if !ok {
			log.Warnf("[PreferenceService] 无法识别的语言 %q，派发时将使用 %s", *update.Locale, locale.Language())
		}
		session.Preferences.SetLocale(locale)
	}
	if update.Mode != nil {
		session.Preferences.SetMode(mode)
	}
	return session.Preferences.Current(), nil
}
