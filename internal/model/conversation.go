package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrTurnNotFound        = errors.New("turn not found")
	ErrAlreadyRated        = errors.New("turn already rated")
	ErrDuplicateQuestionID = errors.New("duplicate question id")
	ErrSessionIDAlreadySet = errors.New("session id already set")
	ErrEmptyQuestionID     = errors.New("empty question id")
)

// FileRef 是回答中引用的文档，创建后不可修改。
type FileRef struct {
	FileID      string `json:"fileId"`
	DisplayName string `json:"displayName"`
}

// RatingState 表示一条回答的评价状态：未评价，或已评价（好/差）。
// 状态只能从未评价转为已评价一次。
type RatingState struct {
	rated    bool
	positive bool
}

// Unrated 返回未评价状态。
func Unrated() RatingState { return RatingState{} }

// RatedAs 返回已评价状态。
func RatedAs(positive bool) RatingState { return RatingState{rated: true, positive: positive} }

func (r RatingState) IsRated() bool  { return r.rated }
func (r RatingState) Positive() bool { return r.rated && r.positive }

func (r RatingState) String() string {
	switch {
	case !r.rated:
		return "unrated"
	case r.positive:
		return "positive"
	default:
		return "negative"
	}
}

// MarshalJSON 输出 "unrated" / "positive" / "negative"。
func (r RatingState) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *RatingState) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "unrated", "":
		*r = Unrated()
	case "positive":
		*r = RatedAs(true)
	case "negative":
		*r = RatedAs(false)
	default:
		return fmt.Errorf("unknown rating state %q", s)
	}
	return nil
}

// Turn 代表一次完整的问答交互。
type Turn struct {
	QuestionID string      `json:"questionId"`
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Citations  []FileRef   `json:"citations"`
	Rating     RatingState `json:"rating"`
	CreatedAt  LocalTime   `json:"createdAt"`
}

// NewTurn 以服务端分配的 questionID 创建一个未评价的轮次，引用列表会被复制。
func NewTurn(questionID, question, answer string, citations []FileRef, now time.Time) Turn {
	refs := make([]FileRef, len(citations))
	copy(refs, citations)
	return Turn{
		QuestionID: questionID,
		Question:   question,
		Answer:     answer,
		Citations:  refs,
		Rating:     Unrated(),
		CreatedAt:  LocalTime(now),
	}
}

func (t Turn) clone() Turn {
	refs := make([]FileRef, len(t.Citations))
	copy(refs, t.Citations)
	t.Citations = refs
	return t
}

// ChatSession 是一次对话：会话 ID 与按完成顺序排列的问答历史。
// 历史只允许追加，除评价状态外轮次创建后不再修改。
type ChatSession struct {
	mu    sync.RWMutex
	id    string
	turns []Turn
	index map[string]int
}

// NewChatSession 创建一个尚未绑定 ID 的会话。
func NewChatSession() *ChatSession {
	return &ChatSession{index: make(map[string]int)}
}

// ID 返回会话 ID，未绑定时为空字符串。
func (s *ChatSession) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// BindID 绑定会话 ID，只允许一次。
func (s *ChatSession) BindID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id != "" {
		return ErrSessionIDAlreadySet
	}
	s.id = id
	return nil
}

// Len 返回已完成的轮次数。
func (s *ChatSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Turns 返回历史的副本。
func (s *ChatSession) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.turns))
	for i, t := range s.turns {
		out[i] = t.clone()
	}
	return out
}

// Turn 按 questionID 查找轮次。
func (s *ChatSession) Turn(questionID string) (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[questionID]
	if !ok {
		return Turn{}, false
	}
	return s.turns[i].clone(), true
}

// FlattenContext 将历史按时间顺序展开为 [问, 答, 问, 答, ..., 新问题]。
// 这是逐字拼接，不做任何摘要。
func (s *ChatSession) FlattenContext(question string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.turns)*2+1)
	for _, t := range s.turns {
		out = append(out, t.Question, t.Answer)
	}
	return append(out, question)
}

// Append 追加一个新轮次。
func (s *ChatSession) Append(t Turn) error {
	if t.QuestionID == "" {
		return ErrEmptyQuestionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[t.QuestionID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateQuestionID, t.QuestionID)
	}
	s.index[t.QuestionID] = len(s.turns)
	s.turns = append(s.turns, t.clone())
	return nil
}

// MarkRated 将轮次从未评价转为已评价，已评价时返回 ErrAlreadyRated。
func (s *ChatSession) MarkRated(questionID string, positive bool) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[questionID]
	if !ok {
		return Turn{}, ErrTurnNotFound
	}
	if s.turns[i].Rating.IsRated() {
		return s.turns[i].clone(), ErrAlreadyRated
	}
	s.turns[i].Rating = RatedAs(positive)
	return s.turns[i].clone(), nil
}
