package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"ta-chat-go/pkg/log"
)

// ErrUploadRejected 表示后端响应体中的 status_code 不是 200。
var ErrUploadRejected = errors.New("upload rejected by backend")

// UploadRequest 描述一次文档上传。
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Department  string
	Collection  string
	Tags        []string
}

// UploadResponse 是上传接口的响应体。
type UploadResponse struct {
	StatusCode int    `json:"status_code"`
	FileID     string `json:"file_id"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload 调用 POST /upload/?department=&collection=，表单字段为 docs_file 与重复的 tags。
// 只有响应体中 status_code == 200 才视为成功。
func (c *httpClient) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	body, contentType, err := buildUploadForm(req)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("department", req.Department)
	query.Set("collection", req.Collection)
	endpoint := c.cfg.BaseURL + "/upload/?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(ctx, httpReq)

	log.Infof("[BackendClient] 开始上传文档, file: %s, department: %s, collection: %s, size: %d",
		req.FileName, req.Department, req.Collection, len(req.Data))
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call upload api: %w", err)
	}
	defer resp.Body.Close()

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response (http %s): %w", resp.Status, err)
	}
	if result.StatusCode != http.StatusOK {
		return &result, fmt.Errorf("%w: status_code=%d, http %s", ErrUploadRejected, result.StatusCode, resp.Status)
	}
	return &result, nil
}

func buildUploadForm(req UploadRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="docs_file"; filename="%s"`, quoteEscaper.Replace(req.FileName)))
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(req.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	// 后端要求 tags 字段必填，没有标签时与网页端一致发送一个空值
	tags := req.Tags
	if len(tags) == 0 {
		tags = []string{""}
	}
	for _, tag := range tags {
		if err := writer.WriteField("tags", tag); err != nil {
			return nil, "", fmt.Errorf("failed to write tag field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}
