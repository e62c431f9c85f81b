package service

import (
	"context"
	"fmt"
	"strings"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"
	"time"
)

// SendRequest 描述一次提问。Collection 为空时使用默认知识库。
type SendRequest struct {
	SessionID  string
	Question   string
	Collection string
	Identity   model.Identity
}

// ChatService 定义了提问派发的接口。
type ChatService interface {
	Send(ctx context.Context, req SendRequest) (model.Turn, error)
}

type chatService struct {
	sessions          SessionService
	client            backend.Client
	defaultCollection string
	anonymousUser     string
	now               func() time.Time
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(sessions SessionService, client backend.Client, defaultCollection, anonymousUser string) ChatService {
	if defaultCollection == "" {
		defaultCollection = "default"
	}
	if anonymousUser == "" {
		anonymousUser = model.AnonymousUserID
	}
	return &chatService{
		sessions:          sessions,
		client:            client,
		defaultCollection: defaultCollection,
		anonymousUser:     anonymousUser,
		now:               time.Now,
	}
}

// Send 将历史展开为上下文连同会话参数一起发送给后端，成功后把新轮次追加到历史。
// 失败时历史不变，错误只记录日志并返回给调用方。
func (s *chatService) Send(ctx context.Context, req SendRequest) (model.Turn, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return model.Turn{}, ErrEmptyQuestion
	}

	session, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return model.Turn{}, err
	}

	// 同一会话同时只允许一个提问在途，保证历史按完成顺序追加
	if !session.BeginDispatch() {
		return model.Turn{}, ErrDispatchInFlight
	}
	defer session.EndDispatch()

	prefs := session.Preferences.Current()
	collection := req.Collection
	if collection == "" {
		collection = s.defaultCollection
	}
	askReq := backend.AskRequest{
		ChatID:       session.Chat.ID(),
		Question:     session.Chat.FlattenContext(question),
		UserID:       s.userID(req.Identity),
		Language:     prefs.Language,
		Collection:   collection,
		QuestionType: prefs.Mode,
	}

	resp, err := s.client.Ask(backend.WithBearer(ctx, req.Identity.Token), askReq)
	if err != nil {
		log.Errorw("[ChatService] 提问派发失败", "chat_id", askReq.ChatID, "error", err)
		return model.Turn{}, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	citations := make([]model.FileRef, 0, len(resp.Files))
	for _, f := range resp.Files {
		citations = append(citations, model.FileRef{FileID: f.FileUUID, DisplayName: f.FileName})
	}
	turn := model.NewTurn(resp.QuestionUUID, question, resp.Answer, citations, s.now())
	if err := session.Chat.Append(turn); err != nil {
		log.Errorw("[ChatService] 追加问答历史失败", "chat_id", askReq.ChatID, "question_uuid", resp.QuestionUUID, "error", err)
		return model.Turn{}, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	log.Infow("[ChatService] 提问完成",
		"chat_id", askReq.ChatID,
		"question_uuid", turn.QuestionID,
		"turns", session.Chat.Len(),
		"citations", len(citations),
	)
	return turn, nil
}

func (s *chatService) userID(identity model.Identity) string {
	if identity.UserID == "" || identity.UserID == model.AnonymousUserID {
		return s.anonymousUser
	}
	return identity.UserID
}
