// Package token 从外部登录流程签发的 JWT 中读取用户身份。
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"ta-chat-go/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// 登录接口在 expire_time 中写入的时间格式
var expireLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// IdentityParser 负责解析 bearer token。
// 配置了密钥时校验 HMAC 签名；否则把 token 视为不透明凭证，只读取声明，
// 且不承认其中的管理员角色。
type IdentityParser struct {
	secretKey []byte
	parser    *jwt.Parser
	now       func() time.Time
}

// NewIdentityParser 创建一个新的 IdentityParser 实例。
func NewIdentityParser(secret string) *IdentityParser {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &IdentityParser{
		secretKey: key,
		parser:    jwt.NewParser(jwt.WithJSONNumber()),
		now:       time.Now,
	}
}

// Verifies 表示是否会校验签名。
func (p *IdentityParser) Verifies() bool {
	return p.secretKey != nil
}

// Parse 解析 token 并返回身份，token 原文保存在 Identity.Token 中以便转发给后端。
func (p *IdentityParser) Parse(tokenString string) (model.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return model.Identity{}, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if p.Verifies() {
		tok, err := p.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// 检查签名方法是否为 HMAC
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return p.secretKey, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return model.Identity{}, ErrTokenExpired
			}
			return model.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if !tok.Valid {
			return model.Identity{}, ErrInvalidToken
		}
	} else {
		if _, _, err := p.parser.ParseUnverified(tokenString, claims); err != nil {
			return model.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	if p.expired(claims) {
		return model.Identity{}, ErrTokenExpired
	}

	identity := model.Identity{
		UserID:   claimString(claims, "user_id", "userId", "sub"),
		Username: claimString(claims, "username"),
		Role:     claimString(claims, "role_name", "role"),
		Token:    tokenString,
	}
	if identity.UserID == "" {
		identity.UserID = identity.Username
	}
	if identity.UserID == "" {
		identity.UserID = model.AnonymousUserID
	}
	if identity.Role == "" {
		identity.Role = model.RoleUnsigned
	}
	// 未校验签名的声明可以被任意伪造，管理员角色降级为未登入
	if !p.Verifies() && identity.Role == model.RoleAdmin {
		identity.Role = model.RoleUnsigned
	}
	return identity, nil
}

// expired 检查登录接口写入的 expire_time 声明（标准 exp 由 jwt 库处理）。
func (p *IdentityParser) expired(claims jwt.MapClaims) bool {
	raw, ok := claims["expire_time"].(string)
	if !ok || raw == "" {
		return false
	}
	for _, layout := range expireLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return p.now().After(t)
		}
	}
	return false
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
