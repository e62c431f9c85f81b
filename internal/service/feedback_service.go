package service

import (
	"context"
	"fmt"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"
)

// FeedbackService 负责记录对回答的评价。
type FeedbackService interface {
	Rate(ctx context.Context, sessionID, questionID string, positive bool, identity model.Identity) (model.Turn, error)
}

type feedbackService struct {
	sessions SessionService
	client   backend.Client
}

// NewFeedbackService 创建一个新的 FeedbackService 实例。
func NewFeedbackService(sessions SessionService, client backend.Client) FeedbackService {
	return &feedbackService{sessions: sessions, client: client}
}

// Rate 提交评价。已评价的回答在本地直接拒绝，不再发起请求；
// 后端未确认时保持未评价，用户可以手动重试。
func (s *feedbackService) Rate(ctx context.Context, sessionID, questionID string, positive bool, identity model.Identity) (model.Turn, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.Turn{}, err
	}

	turn, ok := session.Chat.Turn(questionID)
	if !ok {
		return model.Turn{}, ErrTurnNotFound
	}
	if turn.Rating.IsRated() {
		return turn, ErrAlreadyRated
	}
	if !session.BeginRating(questionID) {
		return turn, ErrRatingInFlight
	}
	defer session.EndRating(questionID)

	// 占位后再读一次，并发的评价可能刚刚完成
	if turn, ok = session.Chat.Turn(questionID); !ok {
		return model.Turn{}, ErrTurnNotFound
	}
	if turn.Rating.IsRated() {
		return turn, ErrAlreadyRated
	}

	success, err := s.client.Rate(backend.WithBearer(ctx, identity.Token), questionID, positive)
	if err != nil {
		log.Errorw("[FeedbackService] 评价请求失败", "question_uuid", questionID, "error", err)
		return turn, fmt.Errorf("%w: %v", ErrRatingRejected, err)
	}
	if !success {
		log.Warnw("[FeedbackService] 后端未确认评价", "question_uuid", questionID)
		return turn, ErrRatingRejected
	}

	rated, err := session.Chat.MarkRated(questionID, positive)
	if err != nil {
		return rated, err
	}
	log.Infow("[FeedbackService] 评价已记录", "question_uuid", questionID, "positive", positive)
	return rated, nil
}
