package user

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/user"
	"github.com/xiebiao/bookmart/pkg/jwt"
)

// RegisterUseCase 用户注册用例
// 设计说明：注册成功即视为登录，直接签发Token，前端不用再走一次登录
type RegisterUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string // buyer/seller，缺省buyer
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	u, err := uc.userService.Register(ctx, req.Name, req.Email, req.Password, user.Role(req.Role))
	if err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  toUserInfo(u),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AuthResponse 注册/登录共用的响应
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo 用户公开信息（不含密码哈希）
type UserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
