package middleware

import (
	"net/http"
	"ta-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 只放行角色为 Admin 的身份，需挂在 AuthMiddleware 之后。
// 未登录与学生身份一律返回 403。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := IdentityFrom(c); !identity.IsAdmin() {
			log.Warnf("AdminAuthMiddleware: 拒绝非管理员访问, user: %s, role: %s, path: %s", identity.UserID, identity.Role, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "权限不足，需要管理员权限", "data": nil})
			return
		}
		c.Next()
	}
}
