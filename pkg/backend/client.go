// Package backend 提供了与问答后端交互的 HTTP 客户端。
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"ta-chat-go/internal/config"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/log"
)

// ErrUnexpectedStatus 表示后端返回了非 200 状态码。
var ErrUnexpectedStatus = errors.New("unexpected backend status")

// 错误信息中保留的响应体长度
const maxErrorBody = 512

// Client 定义了问答后端的请求/响应契约。
type Client interface {
	// AcquireSessionID 获取新的聊天室 ID。
	AcquireSessionID(ctx context.Context) (string, error)
	// Ask 发送展开后的上下文并取得回答与引用。
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)
	// Rate 提交对某条回答的评价，返回后端是否确认成功。
	Rate(ctx context.Context, questionID string, positive bool) (bool, error)
	// Upload 上传文档供后端入库。
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	// ListDocuments 按分类列出已入库的文档。
	ListDocuments(ctx context.Context, department string) ([]model.DocumentInfo, error)
	// DocumentURL 返回文档的直接下载链接。
	DocumentURL(fileID string) string
}

type httpClient struct {
	cfg    config.BackendConfig
	client *http.Client
}

// NewClient 创建一个新的后端客户端。
func NewClient(cfg config.BackendConfig) Client {
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

type bearerKey struct{}

// WithBearer 返回携带 bearer token 的 context，客户端会把它附加到请求头。
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFrom 取出 WithBearer 存入的 token。
func BearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// AskRequest 是 POST /chatroom/{id}/ 的请求体。
type AskRequest struct {
	ChatID       string             `json:"chat_id"`
	Question     []string           `json:"question"`
	UserID       string             `json:"user_id"`
	Language     model.Language     `json:"language"`
	Collection   string             `json:"collection"`
	QuestionType model.QuestionMode `json:"question_type"`
}

// FileInfo 是回答中返回的引用文档。
type FileInfo struct {
	FileUUID string `json:"file_uuid"`
	FileName string `json:"file_name"`
}

// AskResponse 是问答接口的响应体。
type AskResponse struct {
	QuestionUUID string     `json:"question_uuid"`
	Answer       string     `json:"answer"`
	Files        []FileInfo `json:"files"`
}

type ratingRequest struct {
	QuestionUUID string `json:"question_uuid"`
	Rating       bool   `json:"rating"`
}

// AcquireSessionID 调用 GET /chatroom/uuid/。
func (c *httpClient) AcquireSessionID(ctx context.Context) (string, error) {
	var id string
	if err := c.doJSON(ctx, http.MethodGet, "/chatroom/uuid/", nil, &id); err != nil {
		return "", fmt.Errorf("failed to acquire chatroom id: %w", err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("backend returned an empty chatroom id")
	}
	return id, nil
}

// Ask 调用 POST /chatroom/{id}/。
func (c *httpClient) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	log.Debugf("[BackendClient] 发送问题, chat_id: %s, context_len: %d, language: %s, mode: %s",
		req.ChatID, len(req.Question), req.Language, req.QuestionType)
	var resp AskResponse
	path := "/chatroom/" + url.PathEscape(req.ChatID) + "/"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to ask question: %w", err)
	}
	if resp.QuestionUUID == "" {
		return nil, errors.New("backend response is missing question_uuid")
	}
	return &resp, nil
}

// Rate 调用 PATCH /chatroom/rating/。响应可以是裸布尔值，也可以是 {"success": bool}。
func (c *httpClient) Rate(ctx context.Context, questionID string, positive bool) (bool, error) {
	var raw json.RawMessage
	body := ratingRequest{QuestionUUID: questionID, Rating: positive}
	if err := c.doJSON(ctx, http.MethodPatch, "/chatroom/rating/", body, &raw); err != nil {
		return false, fmt.Errorf("failed to rate answer: %w", err)
	}
	return decodeSuccess(raw)
}

func decodeSuccess(raw json.RawMessage) (bool, error) {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag, nil
	}
	var obj struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false, fmt.Errorf("failed to decode rating response: %w", err)
	}
	if obj.Success == nil {
		return false, errors.New("rating response has no success field")
	}
	return *obj.Success, nil
}

// ListDocuments 调用 GET /documentation/{department}/，兼容裸数组与 {"docs_list": [...]}。
func (c *httpClient) ListDocuments(ctx context.Context, department string) ([]model.DocumentInfo, error) {
	var raw json.RawMessage
	path := "/documentation/" + url.PathEscape(department) + "/"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []model.DocumentInfo
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode document list: %w", err)
		}
		return docs, nil
	}
	var wrapped struct {
		DocsList []model.DocumentInfo `json:"docs_list"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode document list: %w", err)
	}
	return wrapped.DocsList, nil
}

// DocumentURL 返回 /documentation/{fileID} 的完整地址。
func (c *httpClient) DocumentURL(fileID string) string {
	return c.cfg.BaseURL + "/documentation/" + url.PathEscape(fileID)
}

// doJSON 发送 JSON 请求并把 200 响应解码到 out。
func (c *httpClient) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		reqBytes, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(reqBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[BackendClient] 请求 %s %s 失败, error: %v", method, path, err)
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *httpClient) authorize(ctx context.Context, req *http.Request) {
	if token := BearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func statusError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	log.Warnf("[BackendClient] 后端返回非 200 状态码: %s", resp.Status)
	return fmt.Errorf("%w: %s, body: %s", ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(bodyBytes)))
}
