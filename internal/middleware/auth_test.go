package middleware

import (
	"net/http"
	"net/http/httptest"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/token"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(parser *token.IdentityParser, seen *model.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(parser))
	r.GET("/whoami", func(c *gin.Context) {
		*seen = IdentityFrom(c)
		c.Status(http.StatusOK)
	})
	r.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	parser := token.NewIdentityParser("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   "u-1",
		"role_name": model.RoleAdmin,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantUser string
	}{
		{name: "anonymous", path: "/whoami", wantCode: http.StatusOK, wantUser: model.AnonymousUserID},
		{name: "bearer", path: "/whoami", header: "Bearer " + tok, wantCode: http.StatusOK, wantUser: "u-1"},
		{name: "query token", path: "/whoami?token=" + tok, wantCode: http.StatusOK, wantUser: "u-1"},
		{name: "bad scheme", path: "/whoami", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "bad token", path: "/whoami", header: "Bearer nope", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen model.Identity
			r := newRouter(parser, &seen)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, seen.UserID)
			}
		})
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	sign := func(secret, role string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role_name": role}).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		secret string
		bearer string
		want   int
	}{
		{"anonymous", "k", "", http.StatusForbidden},
		{"student", "k", sign("k", model.RoleStudent), http.StatusForbidden},
		{"signed admin", "k", sign("k", model.RoleAdmin), http.StatusOK},
		{"admin signed with wrong key", "k", sign("other", model.RoleAdmin), http.StatusUnauthorized},
		{"unverified admin claim", "", sign("attacker", model.RoleAdmin), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen model.Identity
			r := newRouter(token.NewIdentityParser(tt.secret), &seen)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
