// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/log"
	"ta-chat-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// IdentityKey 是身份在 Gin 上下文中的键。
const IdentityKey = "identity"

// AuthMiddleware 创建一个 Gin 中间件，从请求中解析可选的 bearer token。
// 没有 token 时以匿名身份继续；token 无效或已过期时返回 401。
// WebSocket 握手无法设置请求头，因此也接受 token 查询参数。
func AuthMiddleware(parser *token.IdentityParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "无效的授权头格式", "data": nil})
			return
		}
		if tokenString == "" {
			c.Set(IdentityKey, model.Anonymous())
			c.Next()
			return
		}

		identity, err := parser.Parse(tokenString)
		if err != nil {
			log.Warnf("AuthMiddleware: token 解析失败, path: %s, error: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "无效或已过期的 token", "data": nil})
			return
		}
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom 返回 AuthMiddleware 存入的身份，未经过中间件时返回匿名身份。
func IdentityFrom(c *gin.Context) model.Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if identity, ok := v.(model.Identity); ok {
			return identity
		}
	}
	return model.Anonymous()
}

func extractToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return strings.TrimSpace(c.Query("token")), true
	}
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)), true
}
