package user

import (
	"time"
)

// Role 用户角色
// 设计说明：角色只有buyer/seller两种，随Token下发，鉴权时不回查数据库
type Role string

const (
	RoleBuyer  Role = "buyer"  // 买家
	RoleSeller Role = "seller" // 卖家
)

// Valid 角色是否合法
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User 用户实体（聚合根）
// 密码以bcrypt哈希存储，实体不暴露明文相关方法
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string // bcrypt哈希值
	Role         Role
	CreatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码；role为空时默认买家
func NewUser(name, email, hashedPassword string, role Role) *User {
	if role == "" {
		role = RoleBuyer
	}
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// IsSeller 是否为卖家
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}
