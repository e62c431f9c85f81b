package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"ta-chat-go/internal/middleware"
	"ta-chat-go/internal/model"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var errUnknownMessage = errors.New("unknown message type")

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 允许所有来源
		},
	}
)

// ChatHandler 负责提问派发，同时提供 REST 与 WebSocket 两种入口。
type ChatHandler struct {
	chatService     service.ChatService
	feedbackService service.FeedbackService
	sessionService  service.SessionService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService, feedbackService service.FeedbackService, sessionService service.SessionService) *ChatHandler {
	return &ChatHandler{
		chatService:     chatService,
		feedbackService: feedbackService,
		sessionService:  sessionService,
	}
}

// AskRequest 定义了提问请求体。
type AskRequest struct {
	Question   string `json:"question" binding:"required"`
	Collection string `json:"collection"`
}

// Ask 发送一个问题并返回新的问答轮次。
func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Ask: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：问题不能为空")
		return
	}

	turn, err := h.chatService.Send(c.Request.Context(), service.SendRequest{
		SessionID:  c.Param("id"),
		Question:   req.Question,
		Collection: req.Collection,
		Identity:   middleware.IdentityFrom(c),
	})
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, turn)
}

// wsMessage 是客户端发来的消息。纯文本消息视为提问。
type wsMessage struct {
	Type       string `json:"type"`
	Question   string `json:"question"`
	Collection string `json:"collection"`
	QuestionID string `json:"questionId"`
	Positive   bool   `json:"positive"`
}

// Handle 处理一个传入的 WebSocket 连接。消息按顺序处理，每条回复 turn 或 error。
func (h *ChatHandler) Handle(c *gin.Context) {
	sessionID := c.Param("id")
	// 升级前确认会话存在，否则按普通 HTTP 返回 404
	if _, err := h.sessionService.Get(sessionID); err != nil {
		fail(c, err, nil)
		return
	}
	identity := middleware.IdentityFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立，会话: %s, 用户: %s", sessionID, identity.UserID)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			break
		}

		// 同一连接上的消息串行处理
		msg := parseWSMessage(message)
		switch msg.Type {
		case "rate":
			turn, err := h.feedbackService.Rate(c.Request.Context(), sessionID, msg.QuestionID, msg.Positive, identity)
			h.reply(conn, "rating", turn, err)
		case "question":
			turn, err := h.chatService.Send(c.Request.Context(), service.SendRequest{
				SessionID:  sessionID,
				Question:   msg.Question,
				Collection: msg.Collection,
				Identity:   identity,
			})
			h.reply(conn, "turn", turn, err)
		default:
			h.reply(conn, "", model.Turn{}, errUnknownMessage)
		}
	}
}

func parseWSMessage(message []byte) wsMessage {
	trimmed := strings.TrimSpace(string(message))
	if strings.HasPrefix(trimmed, "{") {
		var msg wsMessage
		if err := json.Unmarshal([]byte(trimmed), &msg); err == nil {
			if msg.Type == "" {
				msg.Type = "question"
			}
			return msg
		}
	}
	return wsMessage{Type: "question", Question: trimmed}
}

func (h *ChatHandler) reply(conn *websocket.Conn, kind string, turn model.Turn, err error) {
	// 构造统一的回复结构
	resp := map[string]interface{}{
		"timestamp": time.Now().UnixMilli(),
	}
	if err != nil {
		resp["type"] = "error"
		resp["code"] = statusOf(err)
		resp["message"] = err.Error()
	} else {
		resp["type"] = kind
		resp["data"] = turn
	}
	b, _ := json.Marshal(resp)
	if werr := conn.WriteMessage(websocket.TextMessage, b); werr != nil {
		log.Warnf("写入 WebSocket 消息失败: %v", werr)
	}
}
