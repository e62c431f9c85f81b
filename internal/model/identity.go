package model

// 未登录时使用的身份
const (
	AnonymousUserID = "Anonymous"
	RoleUnsigned    = "未登入"
	RoleAdmin       = "Admin"
	RoleStudent     = "Student"
)

// Identity 是外部登录流程提供的身份：不透明的角色字符串和 bearer token。
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"-"`
}

// Anonymous 返回未登录身份。
func Anonymous() Identity {
	return Identity{UserID: AnonymousUserID, Role: RoleUnsigned}
}

// IsAdmin 判断是否拥有管理员角色。
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
