package middleware

import (
	"bytes"
	"io"
	"strings"
	"ta-chat-go/pkg/log"
	"time"

	"github.com/gin-gonic/gin"
)

// 请求/响应体在日志中保留的最大长度
const maxLoggedBody = 2048

// bodyLogWriter 用于捕获响应体
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 将响应同时写入 gin.ResponseWriter 和内部 buffer
func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLogger 是一个 Gin 中间件，用于记录请求和响应日志。
// 文件上传与 WebSocket 握手不记录请求体。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 记录请求开始时间
		startTime := time.Now()

		// 读取请求体后重新放回，后续处理函数仍可读取
		var requestBody []byte
		if c.Request.Body != nil && !skipBody(c) {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// 使用自定义的 ResponseWriter 捕获响应，WebSocket 需要原始 writer 完成握手
		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		if !isWebsocket(c) {
			c.Writer = blw
		}

		// 处理请求
		c.Next()

		// 记录请求和响应信息
		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestBody", truncate(string(requestBody)),
			"responseBody", truncate(blw.body.String()),
		)
	}
}

func skipBody(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/") || isWebsocket(c)
}

func isWebsocket(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "...(truncated)"
}
