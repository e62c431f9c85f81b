package service

import (
	"context"
	"fmt"
	"ta-chat-go/internal/model"
	"ta-chat-go/internal/repository"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"
)

// SessionView 是会话对外展示的快照。
type SessionView struct {
	ID          string                   `json:"id"`
	History     []model.Turn             `json:"history"`
	Preferences model.PreferenceSnapshot `json:"preferences"`
	Upload      model.UploadJob          `json:"upload"`
}

// SessionService 负责会话的建立、查找与结束。
type SessionService interface {
	Start(ctx context.Context) (string, *model.Session, error)
	Get(id string) (*model.Session, error)
	View(id string) (*SessionView, error)
	End(id string)
}

type sessionService struct {
	client backend.Client
	repo   repository.SessionRepository
}

// NewSessionService 创建一个新的 SessionService 实例。
func NewSessionService(client backend.Client, repo repository.SessionRepository) SessionService {
	return &sessionService{client: client, repo: repo}
}

// Start 向后端申请聊天室 ID，成功后登记新会话。失败时不登记任何会话，也不会自动重试。
func (s *sessionService) Start(ctx context.Context) (string, *model.Session, error) {
	id, err := s.client.AcquireSessionID(ctx)
	if err != nil {
		log.Error("[SessionService] 获取聊天室 ID 失败", err)
		return "", nil, fmt.Errorf("%w: %v", ErrSessionUnresolved, err)
	}

	session := model.NewSession()
	if err := session.Chat.BindID(id); err != nil {
		return "", nil, err
	}
	s.repo.Save(id, session)
	log.Infof("[SessionService] 会话已建立, chat_id: %s", id)
	return id, session, nil
}

// Get 按 ID 查找活动会话。
func (s *sessionService) Get(id string) (*model.Session, error) {
	if id == "" {
		return nil, ErrSessionUnresolved
	}
	session, ok := s.repo.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Chat.ID() == "" {
		return nil, ErrSessionUnresolved
	}
	return session, nil
}

// View 返回会话快照。
func (s *sessionService) View(id string) (*SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &SessionView{
		ID:          session.Chat.ID(),
		History:     session.Chat.Turns(),
		Preferences: session.Preferences.Current(),
		Upload:      session.UploadJob(),
	}, nil
}

// End 结束会话，历史随之丢弃。
func (s *sessionService) End(id string) {
	s.repo.Delete(id)
	log.Infof("[SessionService] 会话已结束, chat_id: %s", id)
}
